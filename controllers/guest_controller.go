package controllers

import (
	"hotelpms/response"
	"hotelpms/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{guests: guests}
}

func (gc *GuestController) ListGuests(c *gin.Context) {
	guests, err := gc.guests.ListGuests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, guests)
}

// SearchGuests tìm khách gần đúng theo tên, ?q=
func (gc *GuestController) SearchGuests(c *gin.Context) {
	results, err := gc.guests.SearchGuests(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, results)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.guests.GetGuest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, guest)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := gc.guests.DeleteGuest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
