package handler

import "github.com/elitetoolboxes/manufacturer-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Tools ---

type createToolRequest struct {
	Name              string  `json:"name"               validate:"required"`
	Description       string  `json:"description"`
	Image             string  `json:"image"`
	Price             float64 `json:"price"              validate:"gte=0"`
	MinimumOrder      int     `json:"minimum_order"      validate:"gte=0"`
	AvailableQuantity int     `json:"available_quantity" validate:"gte=0"`
}

type updateToolRequest struct {
	Name              *string  `json:"name"               validate:"omitempty,min=1"`
	Description       *string  `json:"description"`
	Image             *string  `json:"image"`
	Price             *float64 `json:"price"              validate:"omitempty,gte=0"`
	MinimumOrder      *int     `json:"minimum_order"      validate:"omitempty,gte=0"`
	AvailableQuantity *int     `json:"available_quantity" validate:"omitempty,gte=0"`
}

func (r updateToolRequest) toDomain() domain.ToolUpdate {
	return domain.ToolUpdate{
		Name:              r.Name,
		Description:       r.Description,
		Image:             r.Image,
		Price:             r.Price,
		MinimumOrder:      r.MinimumOrder,
		AvailableQuantity: r.AvailableQuantity,
	}
}

// --- Users ---

type upsertUserRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Education string `json:"education"`
	LinkedIn  string `json:"linkedin"`
	Image     string `json:"image"`
}

type upsertUserResponse struct {
	Result *domain.WriteResult `json:"result"`
	Token  string              `json:"token"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

// --- Orders ---

type placeOrderRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"     validate:"required,email"`
	ToolID   string  `json:"tool_id"   validate:"omitempty,mongodb"`
	ToolName string  `json:"tool_name" validate:"required"`
	Quantity int     `json:"quantity"  validate:"required,gt=0"`
	Price    float64 `json:"price"     validate:"gte=0"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Date     string  `json:"date"`
}

type placeOrderResponse struct {
	Success bool                `json:"success"`
	Result  *domain.WriteResult `json:"result"`
}

type recordPaymentRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// --- Reviews ---

type createReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// --- Payments ---

type paymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
