package notify

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/mockmoments/pkg/configs"
)

func init() {
	RegisterFactory(configs.NotifyTypeGoChannel, func(_ context.Context, _ configs.NotifyConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
		return gochannel.NewGoChannel(gochannel.Config{}, logger), nil
	})
}
