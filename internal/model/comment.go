package model

import "time"

type Comment struct {
	UUID      string    `db:"uuid" json:"id"`
	PostUUID  string    `db:"post_uuid" json:"postId"`
	UserUUID  string    `db:"user_uuid" json:"userId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommentForPost : комментарий вместе с именем автора для экрана поста
type CommentForPost struct {
	UUID     string `db:"uuid" json:"id"`
	UserUUID string `db:"user_uuid" json:"userId"`
	Username string `db:"username" json:"username"`
	Content  string `db:"content" json:"content"`
}
