package dto

// ToggleSubscriptionResponse reports the subscription state after a toggle.
type ToggleSubscriptionResponse struct {
	ChannelID  string `json:"channelID"`
	Subscribed bool   `json:"subscribed"`
}

// SubscriberListResponse wraps the subscriber principals of a channel.
type SubscriberListResponse struct {
	Subscribers []UserResponse `json:"subscribers"`
}

// SubscribedChannelsResponse wraps the channels a user follows.
type SubscribedChannelsResponse struct {
	Channels []UserResponse `json:"channels"`
}
