package runtime

import (
	"strings"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

// TopicMatches reports whether incoming matches any of the pipeline topics.
// Topics use the MQTT wildcards "#" and "+".
func TopicMatches(incoming string, topics []string) bool {
	for _, topic := range topics {
		if topic == models.TopicWildcard {
			return true
		}

		if !strings.ContainsAny(topic, models.TopicWildcard+models.TopicSingleLevelWild) {
			if incoming == topic {
				return true
			}
			continue
		}

		topicLevels := strings.Split(topic, models.TopicLevelSeparator)
		incomingLevels := strings.Split(incoming, models.TopicLevelSeparator)
		if len(topicLevels) > len(incomingLevels) {
			continue
		}

		for i, level := range topicLevels {
			if level == models.TopicWildcard || level == models.TopicSingleLevelWild {
				incomingLevels[i] = level
			}
		}

		if strings.HasPrefix(strings.Join(incomingLevels, models.TopicLevelSeparator), topic) {
			return true
		}
	}

	return false
}
