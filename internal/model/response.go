package model

// ErrorResponse is the uniform body of every error response.
type ErrorResponse struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Error      string `json:"error" yaml:"error"`
	Message    string `json:"message" yaml:"message"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" yaml:"message"`
}

// ItemList is the body of the list endpoint.
type ItemList struct {
	Items []Item `json:"items" yaml:"items"`
}

// CreateItemRequest is the body accepted when creating an item.
// Both fields are required; pointers distinguish absent from zero.
type CreateItemRequest struct {
	Name  *string `json:"name" validate:"required,item_name"`
	Value *Number `json:"value" validate:"required"`
}

// UpdateItemRequest is the body accepted when updating an item.
// Every field is optional and unknown fields are ignored. The name bound is
// enforced by the store once the item is known to exist.
type UpdateItemRequest struct {
	Name  *string `json:"name,omitempty"`
	Value *Number `json:"value,omitempty"`
}

// Patch converts the request into an ItemPatch.
func (r UpdateItemRequest) Patch() (ItemPatch, error) {
	patch := ItemPatch{Name: r.Name}

	if r.Value != nil {
		v, err := r.Value.Int64()
		if err != nil {
			return ItemPatch{}, err
		}
		patch.Value = &v
	}

	return patch, nil
}
