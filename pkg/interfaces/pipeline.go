package interfaces

import "github.com/prometheus/client_golang/prometheus"

// DefaultPipelineId is the id of the pipeline set by
// SetDefaultFunctionsPipeline. It subscribes to every topic.
const DefaultPipelineId = "default-pipeline"

// AppFunction is a single pipeline step. Returning false stops the
// pipeline; when the returned value is an error the stop is a failure.
type AppFunction = func(appCxt AppFunctionContext, data any) (bool, any)

// FunctionPipeline is an ordered list of functions run for messages
// received on any of its topics.
type FunctionPipeline struct {
	Id         string
	Transforms []AppFunction
	Topics     []string
	// Hash identifies the function list. Stored retry data is discarded
	// once the hash changes.
	Hash string

	MessagesProcessed     prometheus.Counter
	MessageProcessingTime prometheus.Histogram
	ProcessingErrors      prometheus.Counter
}
