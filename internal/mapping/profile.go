package mapping

import (
	"fmt"
	"reflect"

	"dropshop/internal/model"
)

// Rule declares one source to destination mapping. Destination fields with a
// same-named, assignable source field are copied implicitly; every other
// destination field must be listed as Explicit (computed by a resolver) or
// Ignored (left for the caller to set).
type Rule struct {
	Source   any
	Target   any
	Explicit []string
	Ignored  []string
}

// Profile is the set of mappings the Mapper implements.
type Profile []Rule

// Validate checks every rule and returns the first unmapped destination field
// as a *model.MappingConfigurationError.
func (p Profile) Validate() error {
	for _, rule := range p {
		if err := rule.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) validate() error {
	_, err := r.implicitFields()
	return err
}

// implicitFields returns the destination fields copied from same-named source
// fields, in declaration order.
func (r Rule) implicitFields() ([]string, error) {
	src := structType(r.Source)
	dst := structType(r.Target)
	if src == nil || dst == nil {
		return nil, fmt.Errorf("mapping rule %T -> %T: source and target must be structs", r.Source, r.Target)
	}

	handled := make(map[string]bool, len(r.Explicit)+len(r.Ignored))
	for _, name := range append(append([]string{}, r.Explicit...), r.Ignored...) {
		if _, ok := dst.FieldByName(name); !ok {
			return nil, fmt.Errorf("mapping rule %s -> %s: unknown destination field %q", src.Name(), dst.Name(), name)
		}
		handled[name] = true
	}

	var implicit []string
	for i := range dst.NumField() {
		field := dst.Field(i)
		if !field.IsExported() || handled[field.Name] {
			continue
		}

		sf, ok := src.FieldByName(field.Name)
		if ok && sf.Type.AssignableTo(field.Type) {
			implicit = append(implicit, field.Name)
			continue
		}

		return nil, &model.MappingConfigurationError{
			Source: src.Name(),
			Target: dst.Name(),
			Field:  field.Name,
		}
	}

	return implicit, nil
}

func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// DefaultProfile describes every mapping implemented in this package.
func DefaultProfile() Profile {
	return Profile{
		{
			Source:   model.Order{},
			Target:   model.OrderDetailsDTO{},
			Explicit: []string{"ShippedDate", "DropshipperName", "Items"},
		},
		{
			Source:   model.OrderItem{},
			Target:   model.OrderItemsDetailsDTO{},
			Explicit: []string{"ProductName", "UnitPrice"},
		},
		{
			Source:   model.Product{},
			Target:   model.ProductDTO{},
			Explicit: []string{"CategoryName", "BrandName", "Images"},
		},
		{
			Source:   model.Product{},
			Target:   model.ProductDetailsDTO{},
			Explicit: []string{"CategoryName", "BrandName", "Images"},
		},
		{Source: model.Category{}, Target: model.CategoryDTO{}},
		{Source: model.Brand{}, Target: model.BrandDTO{}},
		{
			Source:   model.Dropshipper{},
			Target:   model.DropshipperDTO{},
			Explicit: []string{"CreatedAt"},
		},
		{
			Source:   model.OrderCreateDTO{},
			Target:   model.Order{},
			Explicit: []string{"ShippedDate", "Items"},
			Ignored:  []string{"ID", "IsDeleted", "CreatedAt", "Dropshipper"},
		},
		{
			Source:  model.OrderItemCreateDTO{},
			Target:  model.OrderItem{},
			Ignored: []string{"ID", "OrderID", "Position", "Product"},
		},
		{
			Source:   model.OrderUpdateDTO{},
			Target:   model.Order{},
			Explicit: []string{"ShippedDate"},
			Ignored:  []string{"ID", "IsDeleted", "CreatedAt", "Dropshipper", "Items"},
		},
		{
			Source:  model.ProductCreateDTO{},
			Target:  model.Product{},
			Ignored: []string{"ID", "CreatedAt", "Category", "Brand", "Images"},
		},
		{
			Source:  model.ProductUpdateDTO{},
			Target:  model.Product{},
			Ignored: []string{"ID", "CreatedAt", "Category", "Brand", "Images"},
		},
		{
			Source:  model.CategoryRequest{},
			Target:  model.Category{},
			Ignored: []string{"ID", "CreatedAt"},
		},
		{
			Source:  model.BrandRequest{},
			Target:  model.Brand{},
			Ignored: []string{"ID", "CreatedAt"},
		},
		{
			Source:  model.DropshipperDTO{},
			Target:  model.Dropshipper{},
			Ignored: []string{"UserID", "CreatedAt"},
		},
	}
}
