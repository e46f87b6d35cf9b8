package catalog

import "techstore/models"

var defaultProducts = []models.Product{
	{
		ID:          "1",
		Name:        "iPhone 15 Pro Max",
		Price:       29990000,
		Image:       "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?w=400&h=400&fit=crop",
		Description: "256GB, Titan Tự Nhiên - Công nghệ camera tiên tiến",
	},
	{
		ID:          "2",
		Name:        "MacBook Air M3",
		Price:       27990000,
		Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=400&fit=crop",
		Description: "13 inch, 8GB RAM, 256GB SSD - Hiệu suất vượt trội",
	},
	{
		ID:          "3",
		Name:        "AirPods Pro",
		Price:       6490000,
		Image:       "https://images.unsplash.com/photo-1588423771073-b8903fbb85b5?w=400&h=400&fit=crop",
		Description: "Thế hệ thứ 2 với USB-C - Chống ồn chủ động",
	},
	{
		ID:          "4",
		Name:        "Apple Watch Series 9",
		Price:       9990000,
		Image:       "https://images.unsplash.com/photo-1434493789847-2f02dc6ca35d?w=400&h=400&fit=crop",
		Description: "45mm, GPS + Cellular - Theo dõi sức khỏe toàn diện",
	},
	{
		ID:          "5",
		Name:        "iPad Pro 12.9",
		Price:       24990000,
		Image:       "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&h=400&fit=crop",
		Description: "M2 Chip, 128GB, WiFi - Màn hình Liquid Retina XDR",
	},
	{
		ID:          "6",
		Name:        "Samsung Galaxy S24 Ultra",
		Price:       31990000,
		Image:       "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=400&h=400&fit=crop",
		Description: "256GB, Titanium Gray - Camera 200MP, S Pen tích hợp",
	},
	{
		ID:          "7",
		Name:        "Sony WH-1000XM5",
		Price:       8990000,
		Image:       "https://images.unsplash.com/photo-1484704849700-f032a568e944?w=400&h=400&fit=crop",
		Description: "Tai nghe chống ồn cao cấp - 30 giờ pin",
	},
	{
		ID:          "8",
		Name:        "Nintendo Switch OLED",
		Price:       8490000,
		Image:       "https://images.unsplash.com/photo-1606144042614-b2417e99c4e3?w=400&h=400&fit=crop",
		Description: "Màn hình OLED 7 inch - 64GB bộ nhớ trong",
	},
}

var defaultSpecifications = map[string][]models.Specification{
	"1": {
		{Label: "Màn hình", Value: "6.7 inch Super Retina XDR"},
		{Label: "Chip", Value: "A17 Pro Bionic"},
		{Label: "Camera", Value: "Camera chính 48MP, Ultra Wide 12MP"},
		{Label: "Pin", Value: "Lên đến 29 giờ phát video"},
		{Label: "Bộ nhớ", Value: "256GB"},
	},
	"2": {
		{Label: "Màn hình", Value: "13.6 inch Liquid Retina"},
		{Label: "Chip", Value: "Apple M3 8-core CPU"},
		{Label: "RAM", Value: "8GB Unified Memory"},
		{Label: "Ổ cứng", Value: "256GB SSD"},
		{Label: "Pin", Value: "Lên đến 18 giờ"},
	},
	"3": {
		{Label: "Driver", Value: "Driver tùy chỉnh"},
		{Label: "Chip", Value: "H2"},
		{Label: "Chống ồn", Value: "Active Noise Cancellation"},
		{Label: "Pin", Value: "Lên đến 6 giờ (có ANC)"},
		{Label: "Kết nối", Value: "USB-C"},
	},
	"4": {
		{Label: "Màn hình", Value: "45mm Always-On Retina"},
		{Label: "Chip", Value: "S9 SiP"},
		{Label: "Kết nối", Value: "GPS + Cellular"},
		{Label: "Pin", Value: "Lên đến 18 giờ"},
		{Label: "Tính năng", Value: "Double Tap, Siri on-device"},
	},
}

// DemoCart is what a pre-seeded session starts with.
func DemoCart() []models.LineItem {
	return []models.LineItem{
		{
			ID:          "1",
			Name:        "iPhone 15 Pro Max",
			Price:       29990000,
			Quantity:    1,
			Image:       "https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?w=400&h=400&fit=crop",
			Description: "256GB, Titan Tự Nhiên",
		},
		{
			ID:          "2",
			Name:        "MacBook Air M3",
			Price:       27990000,
			Quantity:    1,
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=400&fit=crop",
			Description: "13 inch, 8GB RAM, 256GB SSD",
		},
	}
}
