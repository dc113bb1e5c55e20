package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/models"
)

// ProductTemplate is a specification skeleton offered when creating a
// product of a common kind.
type ProductTemplate struct {
	Name          string               `json:"name"`
	Specification models.Specification `json:"specification"`
}

func spec(pairs ...interface{}) models.Specification {
	var s models.Specification
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case int:
			s.Set(key, models.IntValue(int64(v)))
		default:
			s.Set(key, models.StringValue(v.(string)))
		}
	}
	return s
}

var productTemplates = []ProductTemplate{
	{"CPU", spec("series", "Core i5", "cores", 6, "socket", "LGA1700")},
	{"GPU", spec("chip", "RTX 4060", "vram", "8GB")},
	{"Motherboard", spec("socket", "AM5", "chipset", "B650", "format", "ATX", "ram_type", "DDR5")},
	{"PC Gaming", spec("gpu_model", "RTX 4070", "cpu_family", "Ryzen 7", "ram_size", "32GB", "resolution", "1440p Gaming")},
	{"Laptop", spec("display", `15.6"`, "gpu", "RTX 4060", "cpu", "Core i7", "ram", "16GB", "storage", "1TB SSD")},
	{"RAM", spec("type", "DDR5", "capacity", "32GB", "frequency", "6000 MHz")},
	{"SSD", spec("type", "SSD NVMe", "capacity", "1TB", "interface", "PCIe 4.0")},
	{"PSU", spec("power", "750W", "certification", "Gold", "modular", "Fully modular")},
}

// 🔵 GET /api/manager/product-templates
func (h *Handler) ProductTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, productTemplates)
}
