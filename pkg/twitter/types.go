package twitter

import "time"

// createdAtLayout is the timestamp format of created_at fields.
const createdAtLayout = time.RubyDate

// Status is a tweet.
type Status struct {
	ID        int64  `json:"id"`
	IDStr     string `json:"id_str"`
	CreatedAt string `json:"created_at"`

	// Text holds the classic 140-character field; FullText is populated in
	// extended mode. Use Content to get whichever is set.
	Text     string `json:"text"`
	FullText string `json:"full_text,omitempty"`

	Truncated bool   `json:"truncated"`
	Source    string `json:"source"`
	Lang      string `json:"lang"`

	InReplyToStatusIDStr *string `json:"in_reply_to_status_id_str"`
	InReplyToUserIDStr   *string `json:"in_reply_to_user_id_str"`
	InReplyToScreenName  *string `json:"in_reply_to_screen_name"`

	User             *User     `json:"user,omitempty"`
	Entities         *Entities `json:"entities,omitempty"`
	ExtendedEntities *Entities `json:"extended_entities,omitempty"`

	RetweetedStatus *Status `json:"retweeted_status,omitempty"`
	QuotedStatus    *Status `json:"quoted_status,omitempty"`

	RetweetCount      int   `json:"retweet_count"`
	FavoriteCount     int   `json:"favorite_count"`
	Favorited         bool  `json:"favorited"`
	Retweeted         bool  `json:"retweeted"`
	PossiblySensitive *bool `json:"possibly_sensitive,omitempty"`
}

// Content returns the full text of the status.
func (s *Status) Content() string {
	if s.FullText != "" {
		return s.FullText
	}
	return s.Text
}

// IsRetweet reports whether the status is a retweet of another status.
func (s *Status) IsRetweet() bool { return s.RetweetedStatus != nil }

// CreatedTime parses CreatedAt.
func (s *Status) CreatedTime() (time.Time, error) {
	return time.Parse(createdAtLayout, s.CreatedAt)
}

// User is an account.
type User struct {
	ID          int64   `json:"id"`
	IDStr       string  `json:"id_str"`
	Name        string  `json:"name"`
	ScreenName  string  `json:"screen_name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
	CreatedAt   string  `json:"created_at"`

	Protected bool `json:"protected"`
	Verified  bool `json:"verified"`

	FollowersCount  int `json:"followers_count"`
	FriendsCount    int `json:"friends_count"`
	ListedCount     int `json:"listed_count"`
	FavouritesCount int `json:"favourites_count"`
	StatusesCount   int `json:"statuses_count"`

	ProfileImageURLHTTPS string `json:"profile_image_url_https"`

	// Following is nil when the relationship is unknown.
	Following *bool `json:"following,omitempty"`

	// Status is the account's most recent status, when included.
	Status *Status `json:"status,omitempty"`
}

// CreatedTime parses CreatedAt.
func (u *User) CreatedTime() (time.Time, error) {
	return time.Parse(createdAtLayout, u.CreatedAt)
}

// Indices is a [start, end) range of code points within a status text.
type Indices [2]int

// Entities are the structured elements found in a status text.
type Entities struct {
	Hashtags     []Hashtag   `json:"hashtags"`
	Symbols      []Hashtag   `json:"symbols"`
	URLs         []URLEntity `json:"urls"`
	UserMentions []Mention   `json:"user_mentions"`

	// Media is nil when the status carries no media.
	Media []Media `json:"media,omitempty"`
}

// Hashtag is a #hashtag or $cashtag.
type Hashtag struct {
	Text    string  `json:"text"`
	Indices Indices `json:"indices"`
}

// URLEntity is a shortened link.
type URLEntity struct {
	URL         string  `json:"url"`
	ExpandedURL string  `json:"expanded_url"`
	DisplayURL  string  `json:"display_url"`
	Indices     Indices `json:"indices"`
}

// Mention is an @mention.
type Mention struct {
	ID         int64   `json:"id"`
	IDStr      string  `json:"id_str"`
	ScreenName string  `json:"screen_name"`
	Name       string  `json:"name"`
	Indices    Indices `json:"indices"`
}

// Media is an attached photo, video or animated GIF.
type Media struct {
	ID            int64   `json:"id"`
	IDStr         string  `json:"id_str"`
	Type          string  `json:"type"`
	MediaURL      string  `json:"media_url"`
	MediaURLHTTPS string  `json:"media_url_https"`
	URL           string  `json:"url"`
	DisplayURL    string  `json:"display_url"`
	ExpandedURL   string  `json:"expanded_url"`
	Indices       Indices `json:"indices"`
}

// MediaUpload is the result of uploading a media file.
type MediaUpload struct {
	MediaID          int64      `json:"media_id"`
	MediaIDString    string     `json:"media_id_string"`
	Size             int        `json:"size"`
	ExpiresAfterSecs int        `json:"expires_after_secs"`
	Image            *ImageInfo `json:"image,omitempty"`
}

// ImageInfo describes an uploaded image.
type ImageInfo struct {
	Type   string `json:"image_type"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

// SearchResult is one page of search results.
type SearchResult struct {
	Statuses []Status       `json:"statuses"`
	Metadata SearchMetadata `json:"search_metadata"`
}

// SearchMetadata describes a search page and how to fetch the next one.
type SearchMetadata struct {
	Query       string  `json:"query"`
	Count       int     `json:"count"`
	CompletedIn float64 `json:"completed_in"`
	MaxIDStr    string  `json:"max_id_str"`
	SinceIDStr  string  `json:"since_id_str"`
	NextResults string  `json:"next_results,omitempty"`
	RefreshURL  string  `json:"refresh_url,omitempty"`
}

// Cursor fields shared by paged results. A next cursor of "0" marks the
// last page.
type Cursor struct {
	NextCursorStr     string `json:"next_cursor_str"`
	PreviousCursorStr string `json:"previous_cursor_str"`
}

// HasNext reports whether another page follows.
func (c Cursor) HasNext() bool {
	return c.NextCursorStr != "" && c.NextCursorStr != "0"
}

// IDPage is one page of account IDs.
type IDPage struct {
	IDs []string `json:"ids"`
	Cursor
}

// UserPage is one page of accounts.
type UserPage struct {
	Users []User `json:"users"`
	Cursor
}

// DirectMessage is a message_create event.
type DirectMessage struct {
	Type             string        `json:"type"`
	ID               string        `json:"id,omitempty"`
	CreatedTimestamp string        `json:"created_timestamp,omitempty"`
	MessageCreate    MessageCreate `json:"message_create"`
}

// MessageCreate is the payload of a message_create event.
type MessageCreate struct {
	Target      MessageTarget `json:"target"`
	SenderID    string        `json:"sender_id,omitempty"`
	MessageData MessageData   `json:"message_data"`
}

// MessageTarget names the recipient of a direct message.
type MessageTarget struct {
	RecipientID string `json:"recipient_id"`
}

// MessageData is the content of a direct message.
type MessageData struct {
	Text     string    `json:"text"`
	Entities *Entities `json:"entities,omitempty"`
}

// Token is an OAuth token pair returned by the PIN authorization flow.
type Token struct {
	Token  string
	Secret string

	// Set on access tokens only.
	UserID     string
	ScreenName string
}
