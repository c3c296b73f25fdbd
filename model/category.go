package model

// CategoryGroup is the coarse product classification.
type CategoryGroup string

const (
	CategoryGroupFurniture CategoryGroup = "furniture"
	CategoryGroupAppliance CategoryGroup = "appliance"
	CategoryGroupFashion   CategoryGroup = "fashion"
	CategoryGroupBook      CategoryGroup = "book"
	CategoryGroupVehicle   CategoryGroup = "vehicle"
	CategoryGroupFood      CategoryGroup = "food"
	CategoryGroupHobby     CategoryGroup = "hobby"
)

// Category is the fine product classification.
type Category string

const (
	CategoryFurnitureTable   Category = "furnitureTable"
	CategoryFurnitureChair   Category = "furnitureChair"
	CategoryFurnitureChest   Category = "furnitureChest"
	CategoryFurnitureBed     Category = "furnitureBed"
	CategoryFurnitureKitchen Category = "furnitureKitchen"
	CategoryFurnitureCurtain Category = "furnitureCurtain"
	CategoryFurnitureMat     Category = "furnitureMat"
	CategoryFurnitureOther   Category = "furnitureOther"

	CategoryApplianceRefrigerator  Category = "applianceRefrigerator"
	CategoryApplianceMicrowave     Category = "applianceMicrowave"
	CategoryApplianceWashing       Category = "applianceWashing"
	CategoryApplianceVacuum        Category = "applianceVacuum"
	CategoryApplianceTemperature   Category = "applianceTemperature"
	CategoryApplianceHumidity      Category = "applianceHumidity"
	CategoryApplianceLight         Category = "applianceLight"
	CategoryApplianceTv            Category = "applianceTv"
	CategoryApplianceSpeaker       Category = "applianceSpeaker"
	CategoryApplianceSmartphone    Category = "applianceSmartphone"
	CategoryAppliancePc            Category = "appliancePc"
	CategoryApplianceCommunication Category = "applianceCommunication"
	CategoryApplianceOther         Category = "applianceOther"

	CategoryFashionMens   Category = "fashionMens"
	CategoryFashionLadies Category = "fashionLadies"
	CategoryFashionOther  Category = "fashionOther"

	CategoryBookTextbook Category = "bookTextbook"
	CategoryBookBook     Category = "bookBook"
	CategoryBookComic    Category = "bookComic"
	CategoryBookOther    Category = "bookOther"

	CategoryVehicleBicycle Category = "vehicleBicycle"
	CategoryVehicleBike    Category = "vehicleBike"
	CategoryVehicleCar     Category = "vehicleCar"
	CategoryVehicleOther   Category = "vehicleOther"

	CategoryFoodFood     Category = "foodFood"
	CategoryFoodBeverage Category = "foodBeverage"
	CategoryFoodOther    Category = "foodOther"

	CategoryHobbyDisc       Category = "hobbyDisc"
	CategoryHobbyInstrument Category = "hobbyInstrument"
	CategoryHobbyCamera     Category = "hobbyCamera"
	CategoryHobbyGame       Category = "hobbyGame"
	CategoryHobbySport      Category = "hobbySport"
	CategoryHobbyArt        Category = "hobbyArt"
	CategoryHobbyAccessory  Category = "hobbyAccessory"
	CategoryHobbyDaily      Category = "hobbyDaily"
	CategoryHobbyHandmade   Category = "hobbyHandmade"
	CategoryHobbyOther      Category = "hobbyOther"
)

// CategoriesOfGroup expands a category group into its member categories.
func CategoriesOfGroup(g CategoryGroup) []Category {
	switch g {
	case CategoryGroupFurniture:
		return []Category{
			CategoryFurnitureTable, CategoryFurnitureChair, CategoryFurnitureChest,
			CategoryFurnitureBed, CategoryFurnitureKitchen, CategoryFurnitureCurtain,
			CategoryFurnitureMat, CategoryFurnitureOther,
		}
	case CategoryGroupAppliance:
		return []Category{
			CategoryApplianceRefrigerator, CategoryApplianceMicrowave, CategoryApplianceWashing,
			CategoryApplianceVacuum, CategoryApplianceTemperature, CategoryApplianceHumidity,
			CategoryApplianceLight, CategoryApplianceTv, CategoryApplianceSpeaker,
			CategoryApplianceSmartphone, CategoryAppliancePc, CategoryApplianceCommunication,
			CategoryApplianceOther,
		}
	case CategoryGroupFashion:
		return []Category{CategoryFashionMens, CategoryFashionLadies, CategoryFashionOther}
	case CategoryGroupBook:
		return []Category{CategoryBookTextbook, CategoryBookBook, CategoryBookComic, CategoryBookOther}
	case CategoryGroupVehicle:
		return []Category{CategoryVehicleBicycle, CategoryVehicleBike, CategoryVehicleCar, CategoryVehicleOther}
	case CategoryGroupFood:
		return []Category{CategoryFoodFood, CategoryFoodBeverage, CategoryFoodOther}
	case CategoryGroupHobby:
		return []Category{
			CategoryHobbyDisc, CategoryHobbyInstrument, CategoryHobbyCamera,
			CategoryHobbyGame, CategoryHobbySport, CategoryHobbyArt,
			CategoryHobbyAccessory, CategoryHobbyDaily, CategoryHobbyHandmade,
			CategoryHobbyOther,
		}
	}
	return nil
}

// Condition is the product quality grade.
type Condition string

const (
	ConditionNew        Condition = "new"
	ConditionLikeNew    Condition = "likeNew"
	ConditionVeryGood   Condition = "veryGood"
	ConditionGood       Condition = "good"
	ConditionAcceptable Condition = "acceptable"
	ConditionJunk       Condition = "junk"
)
