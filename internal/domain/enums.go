package domain

// DocumentSourceType identifies where a document chunk came from.
type DocumentSourceType string

const (
	DocumentSourceProgram DocumentSourceType = "program"
)

// SocialPlatform identifies a social network.
type SocialPlatform string

const (
	PlatformBluesky  SocialPlatform = "bluesky"
	PlatformLinkedIn SocialPlatform = "linkedin"
)

// Poll source types.
const (
	PollSourceOnderzoekAmsterdam = "onderzoek_amsterdam"
	PollSourceManual             = "manual"
)
