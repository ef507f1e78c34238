package catalog

import "time"

const (
	breakfastStaples = " + Milk/Tea, Bread & Jam"
	mealStaples      = " + Rice, Curd, Pickle"
)

// Defaults returns the standard weekly menu the mess starts with.
func Defaults() map[Key]Item {
	menu := make(map[Key]Item, 28)
	set := func(days []time.Weekday, breakfast, lunch, snacks, dinner Item) {
		for _, d := range days {
			menu[Key{d, Breakfast}] = breakfast
			menu[Key{d, Lunch}] = lunch
			menu[Key{d, Snacks}] = snacks
			menu[Key{d, Dinner}] = dinner
		}
	}

	set([]time.Weekday{time.Monday},
		Item{"Idli Sambar" + breakfastStaples, "65g", "12g", "14g"},
		Item{"Dal Makhani" + mealStaples, "80g", "15g", "18g"},
		Item{"Samosa", "25g", "10g", "3g"},
		Item{"Paneer Butter Masala" + mealStaples, "75g", "22g", "20g"},
	)
	set([]time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
		Item{"Aloo Paratha" + breakfastStaples, "75g", "18g", "12g"},
		Item{"Chana Masala" + mealStaples, "80g", "12g", "15g"},
		Item{"Tea & Bun", "30g", "4g", "4g"},
		Item{"Mix Veg Curry" + mealStaples, "70g", "14g", "10g"},
	)
	set([]time.Weekday{time.Wednesday, time.Friday},
		Item{"Poha" + breakfastStaples, "70g", "14g", "10g"},
		Item{"Rajma Masala" + mealStaples, "85g", "12g", "16g"},
		Item{"Biscuits", "30g", "12g", "2g"},
		Item{"Veg Biryani" + mealStaples, "90g", "18g", "12g"},
	)
	set([]time.Weekday{time.Sunday},
		Item{"Masala Dosa" + breakfastStaples, "80g", "18g", "10g"},
		Item{"Chicken Biryani" + mealStaples, "100g", "25g", "30g"},
		Item{"Cream Cake", "40g", "15g", "4g"},
		Item{"Aloo Gobi" + mealStaples, "70g", "10g", "12g"},
	)
	return menu
}
