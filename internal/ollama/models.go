package ollama

// RecommendedModel describes one entry in the curated model menu shown
// during onboarding
type RecommendedModel struct {
	Name        string
	Label       string
	Description string
}

// RecommendedModels is the curated list offered by the model-selection step.
// Small models first: the common case is a laptop without a GPU.
var RecommendedModels = []RecommendedModel{
	{
		Name:        "qwen2.5:3b",
		Label:       "Qwen 2.5 3B",
		Description: "Lightning fast, low memory usage. Great for quick summaries.",
	},
	{
		Name:        "llama3.2:3b",
		Label:       "Llama 3.2 3B",
		Description: "Balanced performance. Good all-round task summaries.",
	},
	{
		Name:        "deepseek-r1:8b",
		Label:       "DeepSeek-R1 8B",
		Description: "Advanced reasoning and chain-of-thought. Best quality.",
	},
}
