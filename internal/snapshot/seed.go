package snapshot

import "github.com/polkiloo/warungpos/internal/domain/model"

// Seed returns the built-in single-terminal dataset used when neither a
// remote service nor a persisted snapshot exists.
func Seed() model.Snapshot {
	return model.Snapshot{
		MenuItems: []model.MenuItem{
			{ID: "m1", Name: "Rendang Daging", Price: 45000, Category: model.CategoryMain, Image: "https://picsum.photos/seed/rendang/400/300"},
			{ID: "m2", Name: "Nasi Goreng Kampung", Price: 28000, Category: model.CategoryMain, Image: "https://picsum.photos/seed/nasgor/400/300"},
			{ID: "m3", Name: "Tempe Mendoan", Price: 12000, Category: model.CategorySnack, Image: "https://picsum.photos/seed/mendoan/400/300"},
			{ID: "m4", Name: "Es Teh Manis", Price: 6000, Category: model.CategoryColdDrink, Image: "https://picsum.photos/seed/esteh/400/300"},
			{ID: "m5", Name: "Kopi Tubruk", Price: 8000, Category: model.CategoryHotDrink, Image: "https://picsum.photos/seed/kopi/400/300"},
		},
		Users: []model.User{
			{ID: "o1", Name: "Andi", Role: model.RoleOwner, PIN: "3333"},
			{ID: "a1", Name: "Budi", Role: model.RoleAdmin, PIN: "2222"},
			{ID: "w1", Name: "Sari", Role: model.RoleWaiter, PIN: "1111"},
		},
	}
}
