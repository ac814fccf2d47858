package catalog

import (
	"github.com/kahve-next/internal/constants"
	"github.com/kahve-next/internal/models"
)

// Item 商品目录条目
type Item struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Image    string       `json:"image"`
	Category string       `json:"category"`
}

// Category 商品分类及其下属条目
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

type entry struct {
	id    int
	name  string
	price int64
	image string
}

var categoryLabels = map[string]string{
	constants.CategoryCoffee:     "Kahveler",
	constants.CategoryCookies:    "Kurabiyeler",
	constants.CategoryFood:       "Yemekler",
	constants.CategoryColdDrinks: "Soğuk İçecekler",
}

var categoryOrder = []string{
	constants.CategoryCoffee,
	constants.CategoryCookies,
	constants.CategoryFood,
	constants.CategoryColdDrinks,
}

var catalogData = map[string][]entry{
	constants.CategoryCoffee: {
		{1, "Türk Kahvesi", 100, "https://coffeetropic.com/wp-content/uploads/2020/05/turk-kahvesi.jpg"},
		{2, "Menengiç Kahvesi", 100, "https://www.hataykapinda.com/wp-content/uploads/2020/08/Menengic02-1-1200x1200-1.png"},
		{3, "Filtre Kahve", 100, "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTYMJIs8DvfpqJLaagmDjvxbPDSH9lJLGHwuA&s"},
		{4, "Espresso", 100, "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRgDuPqIWUwfn1egOtY9j_VZZ6fdaizTGYP6g&s"},
		{5, "Osmanlı Kahvesi", 100, "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRtIgbu5AuNmpcZZbzo-Zi4Lu_MIzEJ1ppjOg&s"},
		{6, "Macchiato", 100, "https://images.unsplash.com/photo-1485808191679-5f86510681a2?auto=format&fit=crop&w=500&q=60"},
	},
	constants.CategoryCookies: {
		{7, "Çikolatalı Kurabiye", 50, "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?auto=format&fit=crop&w=500&q=60"},
		{8, "Susamlı Kurabiye", 50, "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTU0z4AIXHl0CwdN70QRktDJ8ja1cCqZ8iP9w&s"},
		{9, "Kıbrıs Tatlısı", 75, "https://i.nefisyemektarifleri.com/2020/01/15/kibris-tatlisi-videolu.jpg"},
		{10, "Triliçe", 75, "https://www.taddoy.com/uploads/thumb/2794414440.jpg"},
		{11, "Islak Kek", 60, "https://i.lezzet.com.tr/images-xxlarge/bol-soslu-islak-kek-d7ba240e-cc3e-4f80-9dab-59aeba9fa6cf"},
	},
	constants.CategoryFood: {
		{12, "Tost", 80, "https://i.nefisyemektarifleri.com/2021/02/12/ayvalik-tost.jpg"},
		{13, "Sandviç", 90, "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a4/Sandwich_%281%29.jpg/330px-Sandwich_%281%29.jpg"},
		{14, "Poğaça", 15, "https://cdn.ye-mek.net/App_UI/Img/out/650/2017/04/susamli-pogaca-resimli-yemek-tarifi(16).jpg"},
		{15, "Simit", 40, "https://upload.wikimedia.org/wikipedia/commons/thumb/0/07/Simit-2x.JPG/500px-Simit-2x.JPG"},
	},
	constants.CategoryColdDrinks: {
		{16, "Limonata", 70, "https://i.lezzet.com.tr/images-xxlarge-recipe/ev-yapimi-konsantre-limonata-01e50b99-5890-411f-a4c2-997a71e8a5cc.jpg"},
		{17, "Cold Brew", 85, "https://lifesimplified.gorenje.com/wp-content/uploads/2024/06/gorenje-blog-refreshing_cold_brew_coffee.jpg"},
		{18, "Kola", 85, "https://i.pinimg.com/736x/59/16/7e/59167ebdb4d3433abeab26cfb6dbb50d.jpg"},
		{19, "İced Latte", 85, "https://images.immediate.co.uk/production/volatile/sites/30/2020/08/iced-latte-30188f7.jpg?quality=90&webp=true&resize=375,341"},
		{20, "Iced Mocha", 85, "https://vibrantlygfree.com/wp-content/uploads/2023/07/iced-mocha-1.jpg"},
	},
}

var (
	itemsByID  map[int]Item
	categories []Category
)

func init() {
	itemsByID = make(map[int]Item)
	categories = make([]Category, 0, len(categoryOrder))
	for _, key := range categoryOrder {
		entries := catalogData[key]
		items := make([]Item, 0, len(entries))
		for _, e := range entries {
			item := Item{
				ID:       e.id,
				Name:     e.name,
				Price:    models.NewMoneyFromInt(e.price),
				Image:    e.image,
				Category: key,
			}
			items = append(items, item)
			itemsByID[item.ID] = item
		}
		categories = append(categories, Category{Key: key, Label: categoryLabels[key], Items: items})
	}
}

// Categories 返回固定分类顺序下的全部商品
func Categories() []Category {
	return categories
}

// ItemByID 按编号查商品，未找到返回 false
func ItemByID(id int) (Item, bool) {
	item, ok := itemsByID[id]
	return item, ok
}

// ItemsByCategory 指定分类下的商品，分类不存在返回 false
func ItemsByCategory(key string) ([]Item, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c.Items, true
		}
	}
	return nil, false
}

// Size 目录内商品总数
func Size() int {
	return len(itemsByID)
}
