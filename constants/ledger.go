package constants

// Direction is the side of the ledger a cash movement lands on.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Channel is the payment channel a transaction moved through.
type Channel string

const (
	ChannelCash    Channel = "Cash"
	ChannelBank    Channel = "Bank"
	ChannelMobile  Channel = "Mobile Transfer"
	ChannelUnknown Channel = "Unknown"
)

// Record sources.
const (
	SourceFileUpload = "file_upload"
	SourcePOS        = "pos"
)

// ReviewStatus is the lifecycle state of a review-queue item.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// EntityKind names the counterparty/stock entity a candidate describes.
type EntityKind string

const (
	KindProduct  EntityKind = "product"
	KindClient   EntityKind = "client"
	KindSupplier EntityKind = "supplier"
)
