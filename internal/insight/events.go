package insight

// Event topics published by the analytics module.
const (
	// TopicAlertRaised carries an analytics.Alert for a swing in the last
	// complete month. Each metric and month is published once.
	TopicAlertRaised = "bi.alert.raised"
)
