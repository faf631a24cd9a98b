package domain

import "time"

// Subscription links a subscriber to the channel (user) they follow.
// One row per (subscriber, channel) pair.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"`
	SubscriberID   string    `json:"subscriberID"` // UserID of the follower
	ChannelID      string    `json:"channelID"`    // UserID of the followed channel
	CreatedAt      time.Time `json:"createdAt"`
}

// ChannelProfile is the aggregated public view of a channel: the owner's
// profile fields joined with subscription counts relative to a viewer.
type ChannelProfile struct {
	UserID            string `json:"userID"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	AvatarURL         string `json:"avatarURL"`
	CoverImageURL     string `json:"coverImageURL"`
	SubscriberCount   int64  `json:"subscriberCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}
