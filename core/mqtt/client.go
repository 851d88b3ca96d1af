package mqtt

// Publisher delivers a finished tutor roster to the tutor's channel.
type Publisher interface {
	// PublishRoster sends payload to the roster topic of tutor and returns the
	// message identifier attached to it.
	PublishRoster(tutor string, payload []byte) (messageID string, err error)
}
