package types

// ModelID identifies one of the served classifiers.
type ModelID string

const (
	ModelUmpire ModelID = "umpire"
	ModelEmail  ModelID = "email"
	ModelURL    ModelID = "url"
)

// KnownModels lists every classifier the server exposes, in route order.
var KnownModels = []ModelID{ModelUmpire, ModelEmail, ModelURL}

// ParseModelID returns the identifier for s, or false if s is not served.
func ParseModelID(s string) (ModelID, bool) {
	for _, id := range KnownModels {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// ModelInfo describes a loaded classifier.
type ModelInfo struct {
	// Identifier used in routes and responses.
	// example: email
	ID ModelID `json:"id" example:"email"`
	// Class labels by index, from the checkpoint's id2label when present.
	// example: ["LABEL_0","LABEL_1"]
	Labels []string `json:"labels" example:"[\"LABEL_0\",\"LABEL_1\"]"`
	// Absolute tokenizer directory.
	// example: /opt/classifyd/email_phishing_model
	TokenizerPath string `json:"tokenizer_path" example:"/opt/classifyd/email_phishing_model"`
	// Absolute checkpoint directory the model was loaded from.
	// example: /opt/classifyd/results_Email_Phishing_Model/checkpoint-800
	CheckpointPath string `json:"checkpoint_path" example:"/opt/classifyd/results_Email_Phishing_Model/checkpoint-800"`
	// Inputs longer than this many tokens are truncated.
	// example: 512
	MaxTokens int `json:"max_tokens" example:"512"`
}
