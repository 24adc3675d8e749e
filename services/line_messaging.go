package services

import (
	"fmt"
	"log"
	"os"

	"umsjevari_go/config"

	"github.com/line/line-bot-sdk-go/linebot"
)

// LineMessagingService pushes office notifications (new admissions, finished
// bulk imports) to the school staff LINE group.
type LineMessagingService struct {
	Bot *linebot.Client
}

// NewLineMessagingService creates a new instance; disabled when the channel
// credentials are missing.
func NewLineMessagingService() *LineMessagingService {
	channelSecret := os.Getenv("LINE_CHANNEL_SECRET")
	channelToken := os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")

	if channelSecret == "" || channelToken == "" {
		log.Println("LINE Messaging API disabled: missing LINE_CHANNEL_SECRET or LINE_CHANNEL_ACCESS_TOKEN")
		return &LineMessagingService{Bot: nil}
	}

	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		log.Printf("Cannot create LINE bot client: %v", err)
		return &LineMessagingService{Bot: nil}
	}

	return &LineMessagingService{Bot: bot}
}

// Enabled reports whether pushes can be sent.
func (s *LineMessagingService) Enabled() bool {
	return s.Bot != nil && config.AppConfig.LineGroupID != ""
}

// NotifyStaff pushes a plain text message to the configured staff group.
func (s *LineMessagingService) NotifyStaff(message string) error {
	if s.Bot == nil {
		return fmt.Errorf("LINE Bot client is not initialized")
	}
	groupID := config.AppConfig.LineGroupID
	if groupID == "" {
		return fmt.Errorf("LINE_GROUP_ID is not configured")
	}

	_, err := s.Bot.PushMessage(groupID, linebot.NewTextMessage(message)).Do()
	if err != nil {
		return fmt.Errorf("LINE Messaging API failed: %v", err)
	}
	return nil
}

// NotifyStaffAsync fires the push without blocking the request path.
func (s *LineMessagingService) NotifyStaffAsync(message string) {
	if !s.Enabled() {
		return
	}
	go func() {
		if err := s.NotifyStaff(message); err != nil {
			log.Printf("LINE staff notification failed: %v", err)
		}
	}()
}
