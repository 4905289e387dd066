package cart

import (
	cartsvc "github.com/harborline/storefront-backend/internal/cart"
)

type cartCreateResponse struct {
	Token string       `json:"token"`
	Cart  cartsvc.View `json:"cart"`
}
