package driver

import (
	"errors"
	"net/http"

	"tripbid/internal/repositories/interfaces"
	"tripbid/internal/services"
	"tripbid/internal/utils"
	"tripbid/internal/validators"
	"tripbid/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripHandler struct {
	tripService services.TripService
	driverRepo  interfaces.DriverRepository
	log         *logger.Logger
}

func NewTripHandler(tripService services.TripService, driverRepo interfaces.DriverRepository, log *logger.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		driverRepo:  driverRepo,
		log:         log,
	}
}

// StartTrip marks the caller's assigned trip as started from the driver's
// current position.
func (h *TripHandler) StartTrip(c *gin.Context) {
	var request validators.StartTripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	driverID, ok := h.callerDriverID(c)
	if !ok {
		return
	}

	if err := h.tripService.StartTrip(c.Request.Context(), request.ToCommand(driverID)); err != nil {
		h.respondStartError(c, err)
		return
	}

	utils.SuccessResponse(c, utils.MsgDriverTripStarted, nil)
}

// callerDriverID resolves the authenticated user to its driver record. It
// writes the error response itself when resolution fails.
func (h *TripHandler) callerDriverID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	driver, err := h.driverRepo.GetByUserID(c.Request.Context(), userObjectID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusForbidden, utils.CodeDriverNotFound, utils.ErrDriverNotFound)
			return primitive.NilObjectID, false
		}
		h.log.WithContext(c.Request.Context()).WithError(err).Error("Failed to resolve caller driver")
		utils.InternalServerErrorResponse(c)
		return primitive.NilObjectID, false
	}

	return driver.ID, true
}

func (h *TripHandler) respondStartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTripNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeTripNotFound, utils.ErrTripNotFound)
	case errors.Is(err, services.ErrInvalidOTP):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeInvalidOTP, utils.ErrInvalidOTP)
	case errors.Is(err, services.ErrNotAssignedDriver):
		utils.ErrorResponse(c, http.StatusForbidden, utils.CodeForbidden, utils.ErrNotTripDriver)
	case errors.Is(err, services.ErrTripAlreadyStarted):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeTripStarted, utils.ErrTripStarted)
	case errors.Is(err, services.ErrTripAlreadyCompleted):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeTripCompleted, utils.ErrTripCompleted)
	case errors.Is(err, services.ErrTripCancelled):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeTripCancelled, utils.ErrTripCancelled)
	case errors.Is(err, services.ErrStartConflict):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeTripStartConflict, utils.ErrTripConflict)
	default:
		h.log.WithContext(c.Request.Context()).WithError(err).Error("Failed to start trip")
		utils.InternalServerErrorResponse(c)
	}
}
