package fusion

import (
	"fmt"

	"fusion-recipe-generator/internal/pkg/common"
)

// 菜系配對的靜態食譜模板，鍵為 "基底-目標"。
// 查詢時先試原順序、再試反轉順序，程序啟動後只讀不寫
var recipeTemplates = map[string][]common.Recipe{
	"Indian-Italian": {
		{
			Name:          "Masala Arrabbiata Pasta",
			BaseCuisine:   "Indian",
			TargetCuisine: "Italian",
			Ingredients: []string{
				"400g penne pasta",
				"2 cups tomato puree",
				"1 tbsp garam masala",
				"1 tsp cumin seeds",
				"4 cloves garlic, minced",
				"1 green chili, sliced",
				"Fresh basil leaves",
				"Olive oil",
				"Salt and pepper to taste",
				"Fresh parmesan (optional)",
			},
			Steps: []string{
				"Cook pasta according to package directions until al dente. Reserve 1 cup pasta water.",
				"Heat olive oil in a large pan. Add cumin seeds and let them splutter.",
				"Add minced garlic and green chili, sauté until fragrant.",
				"Pour in tomato puree, add garam masala, salt, and pepper. Simmer for 10 minutes.",
				"Toss cooked pasta with the sauce, adding pasta water as needed for consistency.",
				"Garnish with fresh basil and serve hot.",
			},
			FlavorLogic: "Indian spices like garam masala and cumin enhance the Italian tomato base, creating a warming, aromatic pasta dish with familiar comfort food appeal.",
			Badges:      []string{"Vegetarian", "Dairy-Free Option", "30 Minutes"},
			Servings:    4,
			PrepTime:    15,
			CookTime:    20,
			Difficulty:  common.DifficultyEasy,
			Nutrition: &common.NutritionInfo{
				Calories:    450,
				Protein:     16,
				Carbs:       62,
				Fat:         14,
				Fiber:       4,
				Sodium:      480,
				Sugars:      8,
				ServingSize: "1 plate",
				Per:         "serving",
			},
			IngredientNutrition: []common.IngredientNutrition{
				{Name: "400g penne pasta", Calories: 1320, Protein: 48, Carbs: 248, Fat: 8},
				{Name: "2 cups tomato puree", Calories: 100, Protein: 4, Carbs: 20, Fat: 0},
				{Name: "Olive oil", Calories: 200, Protein: 0, Carbs: 0, Fat: 22},
				{Name: "Fresh basil", Calories: 5, Protein: 0, Carbs: 1, Fat: 0},
			},
		},
	},
	"Mexican-Japanese": {
		{
			Name:          "Teriyaki Tacos with Wasabi Crema",
			BaseCuisine:   "Mexican",
			TargetCuisine: "Japanese",
			Ingredients: []string{
				"8 small corn tortillas",
				"500g firm tofu or chicken",
				"1/4 cup teriyaki sauce",
				"1/2 cup vegan mayo",
				"1 tbsp wasabi paste",
				"2 cups shredded cabbage",
				"1 avocado, sliced",
				"Pickled ginger",
				"Sesame seeds",
				"Green onions, sliced",
			},
			Steps: []string{
				"Press and cube tofu (or slice chicken). Marinate in teriyaki sauce for 15 minutes.",
				"Mix mayo with wasabi paste to create the wasabi crema. Adjust spice to taste.",
				"Pan-fry or grill the protein until caramelized and cooked through.",
				"Warm tortillas on a dry skillet until pliable.",
				"Assemble tacos with protein, cabbage, avocado, and pickled ginger.",
				"Drizzle with wasabi crema, sprinkle sesame seeds and green onions.",
			},
			FlavorLogic: "The umami-rich teriyaki glaze meets Mexican tortilla tradition, while wasabi crema adds a Japanese kick that replaces traditional jalapeño heat.",
			Badges:      []string{"High Protein", "Gluten-Free Option", "Healthy"},
		},
	},
	"Chinese-French": {
		{
			Name:          "Five-Spice Duck Confit Spring Rolls",
			BaseCuisine:   "Chinese",
			TargetCuisine: "French",
			Ingredients: []string{
				"2 duck legs",
				"2 tbsp five-spice powder",
				"Duck fat for confit",
				"12 spring roll wrappers",
				"1 cup julienned vegetables",
				"Hoisin sauce",
				"Orange zest",
				"Fresh herbs (thyme, chives)",
			},
			Steps: []string{
				"Rub duck legs with five-spice and salt. Refrigerate overnight.",
				"Slow-cook duck in its fat at 250°F for 3 hours until tender.",
				"Shred the duck meat, mix with orange zest and fresh herbs.",
				"Place duck mixture and vegetables in spring roll wrappers.",
				"Roll tightly and deep fry until golden and crispy.",
				"Serve with hoisin sauce for dipping.",
			},
			FlavorLogic: "French confit technique creates impossibly tender duck, while Chinese five-spice and spring roll presentation honor both culinary traditions.",
			Badges:      []string{"High Protein", "Special Occasion"},
		},
	},
	"Thai-Mexican": {
		{
			Name:          "Green Curry Quesadillas",
			BaseCuisine:   "Thai",
			TargetCuisine: "Mexican",
			Ingredients: []string{
				"4 large flour tortillas",
				"2 cups cooked chicken, shredded",
				"1/2 cup green curry paste",
				"1 cup coconut cream",
				"2 cups shredded mozzarella",
				"Fresh Thai basil",
				"Lime wedges",
				"Bean sprouts",
			},
			Steps: []string{
				"Simmer green curry paste with coconut cream until fragrant.",
				"Toss shredded chicken in the curry mixture.",
				"Lay tortilla flat, add cheese, curry chicken, and Thai basil on half.",
				"Fold and cook on a skillet until golden on both sides.",
				"Cut into wedges and serve with lime and bean sprouts.",
			},
			FlavorLogic: "Creamy Thai green curry filling transforms the humble quesadilla, with coconut and basil adding aromatic depth to the melted cheese.",
			Badges:      []string{"High Protein", "Quick Meal"},
		},
	},
	"Japanese-Italian": {
		{
			Name:          "Miso Carbonara",
			BaseCuisine:   "Japanese",
			TargetCuisine: "Italian",
			Ingredients: []string{
				"400g spaghetti",
				"4 egg yolks",
				"2 tbsp white miso paste",
				"1 cup pecorino, grated",
				"150g pancetta or shiitake bacon",
				"Black pepper",
				"Nori strips for garnish",
			},
			Steps: []string{
				"Cook spaghetti in well-salted water until al dente.",
				"Whisk egg yolks with miso paste and half the cheese.",
				"Crisp pancetta in a large pan, remove from heat.",
				"Add hot pasta to the pan, then quickly toss with egg mixture.",
				"Add pasta water as needed for silky sauce. Never scramble!",
				"Serve with remaining cheese, pepper, and nori strips.",
			},
			FlavorLogic: "Umami-rich miso amplifies the savory depth of traditional carbonara, creating an impossibly rich and silky sauce.",
			Badges:      []string{"Vegetarian Option", "Comfort Food"},
		},
	},
	"Korean-Mexican": {
		{
			Name:          "Gochujang BBQ Burrito Bowl",
			BaseCuisine:   "Korean",
			TargetCuisine: "Mexican",
			Ingredients: []string{
				"2 cups cooked rice",
				"500g bulgogi beef or tofu",
				"3 tbsp gochujang",
				"1 tbsp sesame oil",
				"Kimchi",
				"Black beans",
				"Corn",
				"Avocado",
				"Cilantro-lime crema",
			},
			Steps: []string{
				"Marinate protein in gochujang, sesame oil, and garlic for 30 minutes.",
				"Cook protein on high heat until caramelized.",
				"Prepare rice, black beans, corn, and slice avocado.",
				"Assemble bowls with rice base, add protein, kimchi, beans, corn.",
				"Top with avocado and drizzle with cilantro-lime crema.",
				"Garnish with sesame seeds and green onions.",
			},
			FlavorLogic: "Korean gochujang heat meets Mexican bowl format, while kimchi adds fermented tang that echoes pickled vegetables in traditional burritos.",
			Badges:      []string{"High Protein", "Gluten-Free", "Healthy"},
		},
	},
}

// templatesForPair 查詢菜系配對的模板，順序不敏感
func templatesForPair(baseCuisine, targetCuisine string) []common.Recipe {
	if recipes, ok := recipeTemplates[baseCuisine+"-"+targetCuisine]; ok {
		return recipes
	}
	return recipeTemplates[targetCuisine+"-"+baseCuisine]
}

// synthesizeFallback 由固定片語模板合成備援食譜，
// 標籤完全由勾選的偏好決定，全空時給單一 "Fusion Delight"
func synthesizeFallback(baseCuisine, targetCuisine string, dietary, health []string) common.Recipe {
	var badges []string

	if common.ContainsOption(dietary, common.DietVegetarian) {
		badges = append(badges, "Vegetarian")
	}
	if common.ContainsOption(dietary, common.DietVegan) {
		badges = append(badges, "Vegan")
	}
	if common.ContainsOption(dietary, common.DietGlutenFree) {
		badges = append(badges, "Gluten-Free")
	}
	if common.ContainsOption(dietary, common.DietDairyFree) {
		badges = append(badges, "Dairy-Free")
	}
	if common.ContainsOption(dietary, common.DietNutFree) {
		badges = append(badges, "Nut-Free")
	}
	if common.ContainsOption(health, common.HealthLowCalorie) {
		badges = append(badges, "Low Calorie")
	}
	if common.ContainsOption(health, common.HealthHighProtein) {
		badges = append(badges, "High Protein")
	}
	if common.ContainsOption(health, common.HealthDiabeticFriendly) {
		badges = append(badges, "Diabetic Friendly")
	}

	if len(badges) == 0 {
		badges = append(badges, "Fusion Delight")
	}

	return common.Recipe{
		Name:          fmt.Sprintf("%s-Style %s Fusion Bowl", baseCuisine, targetCuisine),
		BaseCuisine:   baseCuisine,
		TargetCuisine: targetCuisine,
		Ingredients: []string{
			"2 cups jasmine rice or grain of choice",
			fmt.Sprintf("Traditional %s spice blend", baseCuisine),
			fmt.Sprintf("%s-style vegetables", targetCuisine),
			"1 lb protein of choice",
			"Fresh herbs from both cuisines",
			"House-made fusion sauce",
			"Pickled vegetables",
			"Toasted sesame seeds",
		},
		Steps: []string{
			fmt.Sprintf("Prepare base using traditional %s cooking methods.", baseCuisine),
			fmt.Sprintf("Season protein with %s spices and aromatics.", targetCuisine),
			"Cook protein to perfection using appropriate technique.",
			"Prepare vegetables with fusion seasoning blend.",
			"Assemble bowl with all components artfully arranged.",
			"Drizzle with fusion sauce and garnish with fresh herbs.",
		},
		FlavorLogic: fmt.Sprintf("This fusion dish combines the bold flavors of %s cuisine with the refined techniques of %s cooking, creating a harmonious blend that respects both culinary traditions.", baseCuisine, targetCuisine),
		Badges:      badges,
	}
}
