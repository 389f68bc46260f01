package request

import (
	"campus-order-service/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LineItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1,max=99"`
}

type CreateOrderRequest struct {
	SlotID uuid.UUID         `json:"slot_id" binding:"required"`
	Items  []LineItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

func (r CreateOrderRequest) ToInput(studentID string) (commands.CreateOrderInput, error) {
	in := commands.CreateOrderInput{StudentID: studentID, SlotID: r.SlotID}
	if err := copier.Copy(&in.Items, r.Items); err != nil {
		return commands.CreateOrderInput{}, err
	}
	return in, nil
}

// ListOrdersQuery binds the shared listing query string.
type ListOrdersQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After  string `form:"after"`
}
