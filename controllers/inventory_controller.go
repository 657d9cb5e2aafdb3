package controllers

import (
	"hotelpms/dto"
	"hotelpms/response"
	"hotelpms/services"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	inventory    *services.InventoryService
	availability *services.AvailabilityChecker
}

func NewInventoryController(inventory *services.InventoryService, availability *services.AvailabilityChecker) *InventoryController {
	return &InventoryController{inventory: inventory, availability: availability}
}

func (ic *InventoryController) CreateRoomType(c *gin.Context) {
	var req dto.RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	rt, err := ic.inventory.CreateRoomType(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rt)
}

func (ic *InventoryController) ListRoomTypes(c *gin.Context) {
	types, err := ic.inventory.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, types)
}

func (ic *InventoryController) GetRoomType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rt, err := ic.inventory.GetRoomType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rt)
}

func (ic *InventoryController) UpdateRoomType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	rt, err := ic.inventory.UpdateRoomType(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rt)
}

func (ic *InventoryController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	room, err := ic.inventory.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

func (ic *InventoryController) ListRooms(c *gin.Context) {
	var q dto.RoomQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Tham số không hợp lệ")
		return
	}
	rooms, err := ic.inventory.ListRooms(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

func (ic *InventoryController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := ic.inventory.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

func (ic *InventoryController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	room, err := ic.inventory.UpdateRoom(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// ChangeRoomStatus housekeeping đổi trạng thái phòng
func (ic *InventoryController) ChangeRoomStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		response.BadRequest(c, "status là bắt buộc")
		return
	}
	room, err := ic.inventory.SetRoomStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// CheckAvailability kiểm tra phòng trống trong khoảng ngày
func (ic *InventoryController) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "check_in và check_out là bắt buộc")
		return
	}
	checkIn, err := dto.ParseFormTime(q.CheckIn)
	if err != nil {
		response.BadRequest(c, "check_in không hợp lệ")
		return
	}
	checkOut, err := dto.ParseFormTime(q.CheckOut)
	if err != nil {
		response.BadRequest(c, "check_out không hợp lệ")
		return
	}
	if !checkOut.After(checkIn) {
		response.BadRequest(c, "check_out phải sau check_in")
		return
	}

	result, err := ic.availability.CheckAvailability(c.Request.Context(), id, checkIn, checkOut, q.ExcludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
