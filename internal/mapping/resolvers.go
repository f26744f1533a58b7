package mapping

import (
	"net/url"
	"strings"
	"time"

	"dropshop/internal/model"
)

// ResolveImageURLs turns stored image references into public URLs, keeping
// their order. Absolute references are returned untouched. The result is
// never nil.
func ResolveImageURLs(baseURL string, images []model.ProductImage) []string {
	urls := make([]string, 0, len(images))
	base := strings.TrimRight(baseURL, "/")

	for _, image := range images {
		if u, err := url.Parse(image.Reference); (err == nil && u.IsAbs()) || base == "" {
			urls = append(urls, image.Reference)
			continue
		}
		urls = append(urls, base+"/"+strings.TrimLeft(image.Reference, "/"))
	}

	return urls
}

// CategoryName returns the name of the loaded category, or "".
func CategoryName(p model.Product) string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// BrandName returns the name of the loaded brand, or "".
func BrandName(p model.Product) string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// DropshipperName returns the user name of the loaded dropshipper, or "".
func DropshipperName(o model.Order) string {
	if o.Dropshipper == nil {
		return ""
	}
	return o.Dropshipper.UserName
}

func productName(item model.OrderItem) string {
	if item.Product == nil {
		return ""
	}
	return item.Product.Name
}

func dateOf(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	d := model.NewDate(*t)
	return &d
}

func timeOf(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
