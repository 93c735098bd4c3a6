package dto

type SearchMenuItemsRequest struct {
	MenuItemIDs []int `json:"menuItemIds"`
}

type SearchMenuItemsResponse struct {
	Items    []MenuItemDTO `json:"items"`
	NotFound []int         `json:"notFound"`
}

type MenuItemDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
}
