package vpaid

// Event names the unit can emit. The unit is the sole producer; the host
// subscribes through [Unit.Subscribe].
const (
	EventAdLoaded               = "AdLoaded"
	EventAdStarted              = "AdStarted"
	EventAdImpression           = "AdImpression"
	EventAdPlaying              = "AdPlaying"
	EventAdPaused               = "AdPaused"
	EventAdStopped              = "AdStopped"
	EventAdSkipped              = "AdSkipped"
	EventAdSkippableStateChange = "AdSkippableStateChange"
	EventAdVideoFirstQuartile   = "AdVideoFirstQuartile"
	EventAdVideoMidpoint        = "AdVideoMidpoint"
	EventAdVideoThirdQuartile   = "AdVideoThirdQuartile"
	EventAdVideoComplete        = "AdVideoComplete"
	EventAdClickThru            = "AdClickThru"
	EventAdInteraction          = "AdInteraction"
	EventAdVolumeChange         = "AdVolumeChange"
	EventAdError                = "AdError"
)

// ClickThruData is the payload of [EventAdClickThru].
type ClickThruData struct {
	// URL is the click-through destination from the creative parameters.
	URL string `json:"url"`

	// ID identifies the click signal source.
	ID string `json:"id"`

	// PlayerHandles tells the host whether it, rather than the unit,
	// should open the URL. This unit never opens URLs itself.
	PlayerHandles bool `json:"playerHandles"`
}

// InteractionData is the payload of [EventAdInteraction].
type InteractionData struct {
	ID string `json:"id"`
}

// AdErrorData is the payload of [EventAdError].
type AdErrorData struct {
	Message string `json:"message"`
}
