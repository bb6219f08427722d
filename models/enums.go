package models

type LocationType string

const (
	LocationTypeManufacturing LocationType = "manufacturing"
	LocationTypeStore         LocationType = "store"
	LocationTypeSupplier      LocationType = "supplier"
)

type ProductKind string

const (
	ProductKindRawMaterial  ProductKind = "raw_material"
	ProductKindManufactured ProductKind = "manufactured"
)

type OrderType string

const (
	OrderTypeRawMaterialPurchase OrderType = "raw_material_purchase"
	OrderTypeTransferToStore     OrderType = "transfer_to_store"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type UrgencyLevel string

const (
	UrgencyHigh   UrgencyLevel = "High"
	UrgencyMedium UrgencyLevel = "Medium"
)
