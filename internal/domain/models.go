// Package domain defines the persistence models for users, tweets, likes,
// media attachments, and follow edges. These types are mapped with GORM and
// form the core data layer of the application.
//
// Each model also acts as its own query descriptor: TableName, Columns, and
// Relationships describe what the generic repository may filter, order, and
// eager-load for that entity. Fetch plans passed to repository calls are
// validated against Relationships, so a typo fails fast instead of silently
// loading nothing.
package domain

import "time"

// User represents an account on the platform. The APIKey is the sole
// authentication credential and is compared by exact equality; it is never
// serialized into JSON responses.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Name: display name (not unique across accounts).
//   - APIKey: opaque credential, unique per user.
//   - Tweets: tweets authored by this user; removed when the user is deleted.
//   - Followers: users that follow this account (edges where account_id = ID).
//   - Following: users this account follows (edges where follower_id = ID).
type User struct {
	ID     uint   `json:"id"   gorm:"primaryKey"`
	Name   string `json:"name" gorm:"type:varchar(50);not null;index"`
	APIKey string `json:"-"    gorm:"column:api_key;type:varchar(128);not null;uniqueIndex:ux_users_api_key"`

	Tweets []Tweet `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Followers []User `json:"followers,omitempty" gorm:"many2many:followers;joinForeignKey:AccountID;joinReferences:FollowerID"`
	Following []User `json:"following,omitempty" gorm:"many2many:followers;joinForeignKey:FollowerID;joinReferences:AccountID"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Columns lists the fields the repository accepts in filters and ordering.
func (User) Columns() []string { return []string{"id", "name", "api_key"} }

// Relationships lists the valid fetch-plan entries for User queries.
func (User) Relationships() []string { return []string{"Tweets", "Followers", "Following"} }

// Tweet is a single post authored by exactly one user. The creation
// timestamp is server-assigned. Likes and media attachments are owned by the
// tweet and cascade-deleted with it.
type Tweet struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	Text      string    `json:"content"   gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	AuthorID  uint      `json:"-"         gorm:"not null;index"`

	// Author is the owning user. Tweets are cascade-deleted when their
	// author is removed.
	Author *User   `json:"author,omitempty"      gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Likes  []Like  `json:"likes,omitempty"       gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Media  []Media `json:"attachments,omitempty" gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Tweet.
func (Tweet) TableName() string { return "tweets" }

// Columns lists the fields the repository accepts in filters and ordering.
func (Tweet) Columns() []string { return []string{"id", "text", "timestamp", "author_id"} }

// Relationships lists the valid fetch-plan entries for Tweet queries.
// "Likes.User" loads the liking users alongside the likes themselves.
func (Tweet) Relationships() []string {
	return []string{"Author", "Likes", "Likes.User", "Media"}
}

// Like marks that a user liked a tweet. A user can like a given tweet at
// most once (enforced by the composite unique index).
type Like struct {
	ID      uint `json:"id"       gorm:"primaryKey"`
	TweetID uint `json:"tweet_id" gorm:"not null;index;uniqueIndex:ux_likes_tweet_user,priority:1"`
	UserID  uint `json:"user_id"  gorm:"not null;index;uniqueIndex:ux_likes_tweet_user,priority:2"`

	Tweet *Tweet `json:"-"              gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// Columns lists the fields the repository accepts in filters and ordering.
func (Like) Columns() []string { return []string{"id", "tweet_id", "user_id"} }

// Relationships lists the valid fetch-plan entries for Like queries.
func (Like) Relationships() []string { return []string{"Tweet", "User"} }

// Media is a binary attachment (typically an image) stored in the database.
// TweetID is nullable: a media row can be uploaded first and claimed by a
// tweet afterwards.
type Media struct {
	ID       uint   `json:"id"        gorm:"primaryKey"`
	FileName string `json:"file_name" gorm:"type:varchar(255);not null"`
	FileBody []byte `json:"-"         gorm:"type:blob;not null"`
	TweetID  *uint  `json:"tweet_id,omitempty" gorm:"index"`

	Tweet *Tweet `json:"-" gorm:"foreignKey:TweetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Media.
func (Media) TableName() string { return "media" }

// Columns lists the fields the repository accepts in filters and ordering.
func (Media) Columns() []string { return []string{"id", "file_name", "tweet_id"} }

// Relationships lists the valid fetch-plan entries for Media queries.
func (Media) Relationships() []string { return []string{"Tweet"} }

// Follow is the join record for the directed follow relationship:
// follower_id follows account_id. The composite primary key doubles as the
// uniqueness constraint, so a duplicate edge is rejected by the database
// rather than by a racy existence check.
type Follow struct {
	AccountID  uint `json:"account_id"  gorm:"primaryKey;autoIncrement:false"`
	FollowerID uint `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`

	Account  *User `json:"-" gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Follower *User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string { return "followers" }

// Columns lists the fields the repository accepts in filters and ordering.
func (Follow) Columns() []string { return []string{"account_id", "follower_id"} }

// Relationships lists the valid fetch-plan entries for Follow queries.
func (Follow) Relationships() []string { return []string{"Account", "Follower"} }
