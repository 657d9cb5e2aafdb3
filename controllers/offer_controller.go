package controllers

import (
	"hotelpms/dto"
	"hotelpms/response"
	"hotelpms/services"

	"github.com/gin-gonic/gin"
)

type OfferController struct {
	offers *services.OfferService
}

func NewOfferController(offers *services.OfferService) *OfferController {
	return &OfferController{offers: offers}
}

func (oc *OfferController) CreateOffer(c *gin.Context) {
	var req dto.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	offer, err := oc.offers.CreateOffer(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offer)
}

func (oc *OfferController) ListOffers(c *gin.Context) {
	offers, err := oc.offers.ListOffers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, offers)
}

func (oc *OfferController) DeleteOffer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := oc.offers.DeleteOffer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (oc *OfferController) CreatePackage(c *gin.Context) {
	var req dto.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	pkg, err := oc.offers.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pkg)
}

func (oc *OfferController) ListPackages(c *gin.Context) {
	pkgs, err := oc.offers.ListPackages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pkgs)
}
