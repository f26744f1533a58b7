// Package mapping projects entity graphs into DTOs and DTOs back into entities.
package mapping

import (
	"dropshop/internal/model"
)

// Mapper implements the mappings declared by DefaultProfile.
type Mapper struct {
	assetBaseURL string
}

// NewMapper validates the mapping profile and returns a Mapper that resolves
// image references against assetBaseURL.
func NewMapper(assetBaseURL string) (*Mapper, error) {
	if err := DefaultProfile().Validate(); err != nil {
		return nil, err
	}
	return &Mapper{assetBaseURL: assetBaseURL}, nil
}

// MapPage projects every element of a page and keeps the envelope fields.
func MapPage[T, U any](page model.Page[T], fn func(T) U) model.Page[U] {
	result := make([]U, 0, len(page.Result))
	for _, item := range page.Result {
		result = append(result, fn(item))
	}
	return model.Page[U]{
		Result:     result,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
	}
}

// OrderDetails maps an order with its loaded dropshipper and items.
func (m *Mapper) OrderDetails(o model.Order) model.OrderDetailsDTO {
	items := make([]model.OrderItemsDetailsDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, m.OrderItemDetails(item))
	}

	return model.OrderDetailsDTO{
		ID:              o.ID,
		ShippedDate:     dateOf(o.ShippedDate),
		OrderPrice:      o.OrderPrice,
		OrderDiscount:   o.OrderDiscount,
		OrderStatus:     o.OrderStatus,
		DropshipperID:   o.DropshipperID,
		DropshipperName: DropshipperName(o),
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

// OrderItemDetails maps an order item. UnitPrice is the product's current price.
func (m *Mapper) OrderItemDetails(item model.OrderItem) model.OrderItemsDetailsDTO {
	dto := model.OrderItemsDetailsDTO{
		ID:                item.ID,
		ProductID:         item.ProductID,
		ProductName:       productName(item),
		Quantity:          item.Quantity,
		OrderItemDiscount: item.OrderItemDiscount,
	}
	if item.Product != nil {
		dto.UnitPrice = item.Product.Price
	}
	return dto
}

// Product maps a product into its list shape.
func (m *Mapper) Product(p model.Product) model.ProductDTO {
	return model.ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ModelYear:    p.ModelYear,
		CategoryName: CategoryName(p),
		BrandName:    BrandName(p),
		Images:       ResolveImageURLs(m.assetBaseURL, p.Images),
	}
}

// ProductDetails maps a product into its detail shape.
func (m *Mapper) ProductDetails(p model.Product) model.ProductDetailsDTO {
	return model.ProductDetailsDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ModelYear:    p.ModelYear,
		CategoryID:   p.CategoryID,
		CategoryName: CategoryName(p),
		BrandID:      p.BrandID,
		BrandName:    BrandName(p),
		Images:       ResolveImageURLs(m.assetBaseURL, p.Images),
		CreatedAt:    p.CreatedAt,
	}
}

func (m *Mapper) Category(c model.Category) model.CategoryDTO {
	return model.CategoryDTO{ID: c.ID, Name: c.Name}
}

func (m *Mapper) Brand(b model.Brand) model.BrandDTO {
	return model.BrandDTO{ID: b.ID, Name: b.Name}
}

func (m *Mapper) Dropshipper(d model.Dropshipper) model.DropshipperDTO {
	return model.DropshipperDTO{
		UserID:       d.UserID,
		UserName:     d.UserName,
		ContactEmail: d.ContactEmail,
		PhoneNumber:  d.PhoneNumber,
		Street:       d.Street,
		City:         d.City,
		Country:      d.Country,
		IsActive:     d.IsActive,
		CreatedAt:    model.NewDate(d.CreatedAt),
	}
}

// NewOrder maps a create request. Ids, position and timestamps are left zero.
func (m *Mapper) NewOrder(dto model.OrderCreateDTO) model.Order {
	items := make([]model.OrderItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, model.OrderItem{
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			OrderItemDiscount: item.OrderItemDiscount,
		})
	}

	return model.Order{
		ShippedDate:   timeOf(dto.ShippedDate),
		OrderPrice:    dto.OrderPrice,
		OrderDiscount: dto.OrderDiscount,
		OrderStatus:   dto.OrderStatus,
		DropshipperID: dto.DropshipperID,
		Items:         items,
	}
}

// ApplyOrderUpdate replaces the scalar fields of o.
func (m *Mapper) ApplyOrderUpdate(dto model.OrderUpdateDTO, o *model.Order) {
	o.ShippedDate = timeOf(dto.ShippedDate)
	o.OrderPrice = dto.OrderPrice
	o.OrderDiscount = dto.OrderDiscount
	o.OrderStatus = dto.OrderStatus
	o.DropshipperID = dto.DropshipperID
}

// NewProduct maps a create request. Images are attached by the caller once uploaded.
func (m *Mapper) NewProduct(dto model.ProductCreateDTO) model.Product {
	return model.Product{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ModelYear:   dto.ModelYear,
		CategoryID:  dto.CategoryID,
		BrandID:     dto.BrandID,
	}
}

// ApplyProductUpdate replaces the scalar fields of p.
func (m *Mapper) ApplyProductUpdate(dto model.ProductUpdateDTO, p *model.Product) {
	p.Name = dto.Name
	p.Description = dto.Description
	p.Price = dto.Price
	p.ModelYear = dto.ModelYear
	p.CategoryID = dto.CategoryID
	p.BrandID = dto.BrandID
}

func (m *Mapper) ApplyCategory(req model.CategoryRequest, c *model.Category) {
	c.Name = req.Name
}

func (m *Mapper) ApplyBrand(req model.BrandRequest, b *model.Brand) {
	b.Name = req.Name
}

// ApplyDropshipper copies the profile fields of dto onto d. UserID and
// CreatedAt are owned by the service and never read from dto.
func (m *Mapper) ApplyDropshipper(dto model.DropshipperDTO, d *model.Dropshipper) {
	d.UserName = dto.UserName
	d.ContactEmail = dto.ContactEmail
	d.PhoneNumber = dto.PhoneNumber
	d.Street = dto.Street
	d.City = dto.City
	d.Country = dto.Country
	d.IsActive = dto.IsActive
}
