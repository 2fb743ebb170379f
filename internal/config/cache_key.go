package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session JTI.
func (r *CacheKeyStruct) UserSessionKey(username string) string {
	return fmt.Sprintf("login:%s", username)
}

// QuizSessionKey returns the cache key for a sequential quiz session document.
func (r *CacheKeyStruct) QuizSessionKey(sessionID string) string {
	return fmt.Sprintf("session:quiz:%s", sessionID)
}

// MapSessionKey returns the cache key for a map quiz session document.
func (r *CacheKeyStruct) MapSessionKey(sessionID string) string {
	return fmt.Sprintf("session:map:%s", sessionID)
}

// QuizLeaderboardChannel returns the Redis PubSub channel for score
// submissions on a quiz.
func (r *CacheKeyStruct) QuizLeaderboardChannel(quizID int) string {
	return fmt.Sprintf("quiz:%d:leaderboard", quizID)
}

var CacheKey = NewCacheKeyStruct()
