package dto

// StudentRequest is the payload accepted by student create and update.
type StudentRequest struct {
	RollNumber *string `json:"roll_number" form:"roll_number" validate:"required"`
	FirstName  *string `json:"first_name" form:"first_name" validate:"required"`
	LastName   *string `json:"last_name" form:"last_name"`
}
