package routes

import (
	"net/http"

	_ "hotelpms/docs"

	"hotelpms/controllers"
	middlewares "hotelpms/middleware"
	"hotelpms/policy"
	"hotelpms/response"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers tập controller được gắn vào router
type Controllers struct {
	Inventory    *controllers.InventoryController
	Offers       *controllers.OfferController
	Guests       *controllers.GuestController
	Reservations *controllers.ReservationController
}

func SetupRoutes(router *gin.Engine, auth *middlewares.Authenticator, ctl Controllers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(response.NotFound)

	v1 := router.Group("/api/v1")

	v1.POST("/room-types", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionWrite), ctl.Inventory.CreateRoomType)
	v1.GET("/room-types", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionRead), ctl.Inventory.ListRoomTypes)
	v1.GET("/room-types/:id", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionRead), ctl.Inventory.GetRoomType)
	v1.PUT("/room-types/:id", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionWrite), ctl.Inventory.UpdateRoomType)

	v1.POST("/rooms", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionWrite), ctl.Inventory.CreateRoom)
	v1.GET("/rooms", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionRead), ctl.Inventory.ListRooms)
	v1.GET("/rooms/:id", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionRead), ctl.Inventory.GetRoom)
	v1.PUT("/rooms/:id", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionWrite), ctl.Inventory.UpdateRoom)
	v1.PUT("/rooms/:id/status", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionWrite), ctl.Inventory.ChangeRoomStatus)
	v1.GET("/rooms/:id/availability", auth.AuthMiddleware(policy.ResourceInventory, policy.ActionRead), ctl.Inventory.CheckAvailability)

	v1.POST("/offers", auth.AuthMiddleware(policy.ResourceOffer, policy.ActionWrite), ctl.Offers.CreateOffer)
	v1.GET("/offers", auth.AuthMiddleware(policy.ResourceOffer, policy.ActionRead), ctl.Offers.ListOffers)
	v1.DELETE("/offers/:id", auth.AuthMiddleware(policy.ResourceOffer, policy.ActionDelete), ctl.Offers.DeleteOffer)
	v1.POST("/packages", auth.AuthMiddleware(policy.ResourceOffer, policy.ActionWrite), ctl.Offers.CreatePackage)
	v1.GET("/packages", auth.AuthMiddleware(policy.ResourceOffer, policy.ActionRead), ctl.Offers.ListPackages)

	v1.GET("/guests", auth.AuthMiddleware(policy.ResourceGuest, policy.ActionRead), ctl.Guests.ListGuests)
	v1.GET("/guests/search", auth.AuthMiddleware(policy.ResourceGuest, policy.ActionRead), ctl.Guests.SearchGuests)
	v1.GET("/guests/:id", auth.AuthMiddleware(policy.ResourceGuest, policy.ActionRead), ctl.Guests.GetGuest)
	v1.DELETE("/guests/:id", auth.AuthMiddleware(policy.ResourceGuest, policy.ActionDelete), ctl.Guests.DeleteGuest)

	v1.POST("/reservations", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionWrite), ctl.Reservations.CreateReservation)
	v1.GET("/reservations", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionRead), ctl.Reservations.ListReservations)
	v1.POST("/reservations/price", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionRead), ctl.Reservations.CalculatePrice)
	v1.GET("/reservations/:id", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionRead), ctl.Reservations.GetReservation)
	v1.PUT("/reservations/:id", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionWrite), ctl.Reservations.UpdateReservation)
	v1.POST("/reservations/:id/reassign", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionReassign), ctl.Reservations.ReassignRoom)
	v1.POST("/reservations/:id/check-in", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionCheckIn), ctl.Reservations.CheckIn)
	v1.POST("/reservations/:id/cancel", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionCancel), ctl.Reservations.Cancel)
	v1.POST("/reservations/:id/checkout", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionCheckout), ctl.Reservations.Checkout)
	v1.GET("/reservations/:id/logs", auth.AuthMiddleware(policy.ResourceReservation, policy.ActionRead), ctl.Reservations.ListLogs)

	v1.POST("/payments", auth.AuthMiddleware(policy.ResourcePayment, policy.ActionWrite), ctl.Reservations.CreatePayment)
}
