package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"hotelpms/dto"
	"hotelpms/middleware"
	"hotelpms/response"
	"hotelpms/services"
	"hotelpms/services/logger"

	"github.com/gin-gonic/gin"
)

const maxUploadMemory = 32 << 20

type ReservationController struct {
	facade   *services.BookingFacade
	uploader services.AttachmentUploader
	logger   logger.Logger
}

type ReservationControllerOptions struct {
	Facade   *services.BookingFacade
	Uploader services.AttachmentUploader
	Logger   logger.Logger
}

func NewReservationController(opts ReservationControllerOptions) *ReservationController {
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	return &ReservationController{
		facade:   opts.Facade,
		uploader: opts.Uploader,
		logger:   opts.Logger,
	}
}

// CreateReservation godoc
// @Summary      Tạo đặt phòng
// @Tags         reservations
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.CreateReservationRequest  true  "Booking payload"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /api/v1/reservations [post]
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var (
		req         *dto.CreateReservationRequest
		attachments []string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") || c.ContentType() == "application/x-www-form-urlencoded" {
		var ok bool
		req, attachments, ok = rc.bindReservationForm(c)
		if !ok {
			return
		}
	} else {
		req = &dto.CreateReservationRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
			return
		}
	}

	reservation, err := rc.facade.CreateBooking(c.Request.Context(), req, attachments, middleware.ActorID(c))
	if err != nil {
		rc.discardAttachments(c.Request.Context(), attachments)
		response.Error(c, err)
		return
	}
	response.Created(c, reservation)
}

// bindReservationForm đọc form dạng guests[0][first_name] và tải file attachments theo thứ tự
func (rc *ReservationController) bindReservationForm(c *gin.Context) (*dto.CreateReservationRequest, []string, bool) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		response.BadRequest(c, "Form không hợp lệ")
		return nil, nil, false
	}

	values := c.Request.PostForm
	var files []*multipart.FileHeader
	if c.Request.MultipartForm != nil {
		values = c.Request.MultipartForm.Value
		files = c.Request.MultipartForm.File["attachments"]
	}

	req, err := dto.DecodeReservationForm(values)
	if err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return nil, nil, false
	}
	if len(files) == 0 {
		return req, nil, true
	}
	if rc.uploader == nil {
		response.BadRequest(c, "Hệ thống chưa hỗ trợ tải giấy tờ")
		return nil, nil, false
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Không thể đọc file "+fh.Filename)
			return nil, nil, false
		}
		url, err := rc.uploader.Upload(c.Request.Context(), src, fh.Filename)
		src.Close()
		if err != nil {
			rc.logger.Error("upload attachment %s failed: %v", fh.Filename, err)
			rc.discardAttachments(c.Request.Context(), urls)
			response.ServerError(c)
			return nil, nil, false
		}
		urls = append(urls, url)
	}
	return req, urls, true
}

// discardAttachments xóa các file đã tải của một request thất bại.
// File không xóa được sẽ được log URL để dọn tay.
func (rc *ReservationController) discardAttachments(ctx context.Context, urls []string) {
	if len(urls) == 0 || rc.uploader == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, u := range urls {
		if err := rc.uploader.Remove(ctx, u); err != nil {
			rc.logger.Warn("orphaned attachment %s: %v", u, err)
		}
	}
}

// CalculatePrice godoc
// @Summary      Báo giá đặt phòng
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PriceRequest  true  "Price payload"
// @Success      200   {object}  response.Response
// @Router       /api/v1/reservations/price [post]
func (rc *ReservationController) CalculatePrice(c *gin.Context) {
	var req dto.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	price, err := rc.facade.CalculatePrices(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, price)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.facade.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reservation)
}

func (rc *ReservationController) ListReservations(c *gin.Context) {
	var q dto.ReservationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Tham số không hợp lệ")
		return
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	list, total, err := rc.facade.ListReservations(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, list, q.Page, q.Limit, total)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	reservation, err := rc.facade.UpdateReservation(c.Request.Context(), id, &req, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reservation)
}

// ReassignRoom godoc
// @Summary      Đổi phòng cho đặt phòng
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Reservation ID"
// @Param        body  body      dto.ReassignRoomRequest  true  "Room swaps"
// @Success      200   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /api/v1/reservations/{id}/reassign [post]
func (rc *ReservationController) ReassignRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReassignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	result, err := rc.facade.ReassignRoom(c.Request.Context(), id, &req, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (rc *ReservationController) CheckIn(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.facade.CheckIn(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reservation)
}

func (rc *ReservationController) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
			return
		}
	}
	reservation, err := rc.facade.Cancel(c.Request.Context(), id, req.Reason, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reservation)
}

// Checkout godoc
// @Summary      Trả phòng
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Reservation ID"
// @Param        body  body      dto.CheckoutRequest  true  "Payment at checkout"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /api/v1/reservations/{id}/checkout [post]
func (rc *ReservationController) Checkout(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
			return
		}
	}
	result, err := rc.facade.Checkout(c.Request.Context(), id, &req, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (rc *ReservationController) ListLogs(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	logs, err := rc.facade.ListLogs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}

// CreatePayment godoc
// @Summary      Ghi nhận thanh toán
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PaymentRequest  true  "Payment"
// @Success      201   {object}  response.Response
// @Router       /api/v1/payments [post]
func (rc *ReservationController) CreatePayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	result, err := rc.facade.CreatePayment(c.Request.Context(), &req, middleware.ActorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
