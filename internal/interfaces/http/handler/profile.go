package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopora/backend/internal/application/identity"
)

// ProfileHandler handles profile and address endpoints
type ProfileHandler struct {
	BaseHandler
	userService *identityapp.UserService
	authService *identityapp.AuthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userService *identityapp.UserService, authService *identityapp.AuthService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		authService: authService,
	}
}

// RegisterRoutes registers profile routes on the API group
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Update)
		profile.PUT("/password", h.ChangePassword)
		profile.GET("/addresses", h.ListAddresses)
		profile.POST("/addresses", h.AddAddress)
		profile.DELETE("/addresses/:addressId", h.RemoveAddress)
	}
}

// UpdateProfileRequest is the request body for profile updates
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string `json:"lastName" binding:"required,min=1,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
}

// AddAddressRequest is the request body for adding a shipping address
type AddAddressRequest struct {
	Label      string `json:"label" binding:"omitempty,max=50" example:"Home"`
	FullName   string `json:"fullName" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=500"`
	Line2      string `json:"line2" binding:"omitempty,max=500"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"omitempty,max=100"`
	PostalCode string `json:"postalCode" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
	IsDefault  bool   `json:"isDefault"`
}

// AddressResponse is the address representation in API responses
type AddressResponse struct {
	ID         string `json:"id,omitempty"`
	Label      string `json:"label,omitempty"`
	FullName   string `json:"fullName"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
	IsDefault  bool   `json:"isDefault"`
}

// ProfileResponse is the profile representation in API responses
type ProfileResponse struct {
	User      *UserResponse     `json:"user"`
	Addresses []AddressResponse `json:"addresses"`
}

func toAddressResponse(a identityapp.AddressInfo) AddressResponse {
	return AddressResponse{
		ID:         a.ID.String(),
		Label:      a.Label,
		FullName:   a.Address.FullName(),
		Line1:      a.Address.Line1(),
		Line2:      a.Address.Line2(),
		City:       a.Address.City(),
		State:      a.Address.State(),
		PostalCode: a.Address.PostalCode(),
		Country:    a.Address.Country(),
		Phone:      a.Address.Phone(),
		IsDefault:  a.IsDefault,
	}
}

func toProfileResponse(p *identityapp.ProfileResult) ProfileResponse {
	addresses := make([]AddressResponse, 0, len(p.Addresses))
	for _, a := range p.Addresses {
		addresses = append(addresses, toAddressResponse(a))
	}
	return ProfileResponse{
		User:      toUserResponse(p.User),
		Addresses: addresses,
	}
}

// Get godoc
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=ProfileResponse}
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfileResponse(profile))
}

// Update godoc
// @Summary      Update the authenticated user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} dto.Response{data=ProfileResponse}
// @Router       /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid profile data: "+err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), identityapp.UpdateProfileInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfileResponse(profile))
}

// ChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Old and new password"
// @Success      200 {object} dto.Response
// @Router       /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid password data: "+err.Error())
		return
	}

	err = h.authService.ChangePassword(c.Request.Context(), identityapp.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Password changed", nil)
}

// ListAddresses godoc
// @Summary      List the authenticated user's saved addresses
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]AddressResponse}
// @Router       /profile/addresses [get]
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.userService.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressResponse(a))
	}
	h.Success(c, out)
}

// AddAddress godoc
// @Summary      Add a shipping address
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddAddressRequest true "Address"
// @Success      201 {object} dto.Response{data=AddressResponse}
// @Router       /profile/addresses [post]
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid address data: "+err.Error())
		return
	}

	address, err := h.userService.AddAddress(c.Request.Context(), identityapp.AddAddressInput{
		UserID:     userID,
		Label:      req.Label,
		FullName:   req.FullName,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toAddressResponse(*address))
}

// RemoveAddress godoc
// @Summary      Remove a saved address
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        addressId path string true "Address ID"
// @Success      204
// @Router       /profile/addresses/{addressId} [delete]
func (h *ProfileHandler) RemoveAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := parseIDParam(c, "addressId")
	if !ok {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.userService.RemoveAddress(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
