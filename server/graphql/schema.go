// Package graphql holds the hand-written schema served by the relay
// handler. Access tokens travel as explicit arguments, not transport
// headers, so every operation names its own authorization input.
package graphql

// GetGQLSchema returns the schema definition string.
func GetGQLSchema() string {
	return schema
}

const schema = `
schema {
	query: Query
	mutation: Mutation
}

scalar Time

type Query {
	user(userId: ID!): User!
	userPrivate(accessToken: String!): UserPrivate!
	product(productId: ID!): Product!
	productAll: [Product!]!
	productRecentAll: [Product!]!
	productRecommendAll: [Product!]!
	productFreeAll: [Product!]!
	productSearch(query: String!, category: Category, categoryGroup: CategoryGroup, condition: Condition, school: School, department: Department, graduate: Graduate): [Product!]!
	productComments(productId: ID!): [ProductComment!]!
	trade(accessToken: String!, tradeId: ID!): Trade!
	tradeComments(accessToken: String!, tradeId: ID!): [TradeComment!]!
	draftProducts(accessToken: String!): [DraftProduct!]!
}

type Mutation {
	getLogInUrl(service: AccountService!): String!
	getLineNotifyUrl(accessToken: String!): String!
	registerSignUpData(sendEmailToken: String!, displayName: String!, image: String, university: UniversityInput!, email: String!): Boolean!
	updateProfile(accessToken: String!, displayName: String!, introduction: String!, image: String, university: UniversityInput!): User!
	sellProduct(accessToken: String!, name: String!, price: Int!, description: String!, condition: Condition!, category: Category!, images: [String!]!): Product!
	updateProduct(accessToken: String!, productId: ID!, name: String!, price: Int!, description: String!, condition: Condition!, category: Category!, addImages: [String!]!, deleteImageIndexes: [Int!]!): Product!
	deleteProduct(accessToken: String!, productId: ID!): Boolean!
	markProductInHistory(accessToken: String!, productId: ID!): Product!
	likeProduct(accessToken: String!, productId: ID!): Product!
	unlikeProduct(accessToken: String!, productId: ID!): Product!
	addProductComment(accessToken: String!, productId: ID!, body: String!): [ProductComment!]!
	addDraftProduct(accessToken: String!, name: String!, price: Int, description: String!, condition: Condition, category: Category, images: [String!]!): DraftProduct!
	updateDraftProduct(accessToken: String!, draftId: ID!, name: String!, price: Int, description: String!, condition: Condition, category: Category, addImages: [String!]!, deleteImageIndexes: [Int!]!): DraftProduct!
	deleteDraftProduct(accessToken: String!, draftId: ID!): Boolean!
	startTrade(accessToken: String!, productId: ID!): Trade!
	addTradeComment(accessToken: String!, tradeId: ID!, body: String!): [TradeComment!]!
	cancelTrade(accessToken: String!, tradeId: ID!): Trade!
	finishTrade(accessToken: String!, tradeId: ID!): Trade!
}

enum AccountService {
	line
}

enum Condition {
	new
	likeNew
	veryGood
	good
	acceptable
	junk
}

enum CategoryGroup {
	furniture
	appliance
	fashion
	book
	vehicle
	food
	hobby
}

enum Category {
	furnitureTable
	furnitureChair
	furnitureChest
	furnitureBed
	furnitureKitchen
	furnitureCurtain
	furnitureMat
	furnitureOther
	applianceRefrigerator
	applianceMicrowave
	applianceWashing
	applianceVacuum
	applianceTemperature
	applianceHumidity
	applianceLight
	applianceTv
	applianceSpeaker
	applianceSmartphone
	appliancePc
	applianceCommunication
	applianceOther
	fashionMens
	fashionLadies
	fashionOther
	bookTextbook
	bookBook
	bookComic
	bookOther
	vehicleBicycle
	vehicleBike
	vehicleCar
	vehicleOther
	foodFood
	foodBeverage
	foodOther
	hobbyDisc
	hobbyInstrument
	hobbyCamera
	hobbyGame
	hobbySport
	hobbyArt
	hobbyAccessory
	hobbyDaily
	hobbyHandmade
	hobbyOther
}

enum School {
	humcul
	socint
	human
	life
	sse
	info
	med
	aandd
	sport
}

enum Department {
	humanity
	culture
	japanese
	social
	cis
	education
	psyche
	disability
	biol
	bres
	earth
	math
	phys
	chem
	coens
	esys
	pandps
	coins
	mast
	klis
	med
	nurse
	ms
	aandd
	sport
}

enum Graduate {
	education
	hass
	gabs
	pas
	sie
	life
	chs
	slis
	global
}

enum ProductStatus {
	selling
	trading
	soldOut
}

enum TradeStatus {
	inProgress
	waitSellerFinish
	waitBuyerFinish
	finish
	cancelBySeller
	cancelByBuyer
}

enum SellerOrBuyer {
	seller
	buyer
}

input UniversityInput {
	department: Department
	graduate: Graduate
}

type User {
	id: ID!
	displayName: String!
	imageId: ID!
	introduction: String!
	department: Department
	graduate: Graduate
	createdAt: Time!
	soldProducts: [Product!]!
}

type UserPrivate {
	id: ID!
	displayName: String!
	imageId: ID!
	introduction: String!
	department: Department
	graduate: Graduate
	createdAt: Time!
	soldProducts: [Product!]!
	likedProducts: [Product!]!
	historyViewProducts: [Product!]!
	trading: [Trade!]!
	traded: [Trade!]!
	commentedProducts: [Product!]!
}

type Product {
	id: ID!
	name: String!
	price: Int!
	description: String!
	condition: Condition!
	category: Category!
	thumbnailImageId: ID!
	imageIds: [ID!]!
	likedCount: Int!
	viewedCount: Int!
	status: ProductStatus!
	seller: UserSnapshot!
	createdAt: Time!
	updatedAt: Time!
}

type UserSnapshot {
	id: ID!
	displayName: String!
	imageId: ID!
}

type ProductComment {
	commentId: ID!
	body: String!
	speaker: UserSnapshot!
	createdAt: Time!
}

type DraftProduct {
	draftId: ID!
	name: String!
	description: String!
	price: Int
	condition: Condition
	category: Category
	thumbnailImageId: ID!
	imageIds: [ID!]!
	createdAt: Time!
	updatedAt: Time!
}

type Trade {
	id: ID!
	product: Product!
	buyer: UserSnapshot!
	status: TradeStatus!
	createdAt: Time!
	updatedAt: Time!
}

type TradeComment {
	commentId: ID!
	body: String!
	speaker: SellerOrBuyer!
	createdAt: Time!
}
`
