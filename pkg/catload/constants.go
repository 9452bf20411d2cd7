package catload

// Exit codes.
// The pipeline is a single-shot batch job, so every failure (usage, input,
// storage) collapses to 1. Panics are kept apart so crash reports stand out.
const (
	ExitSuccess = 0 // Pipeline completed and the relation was replaced
	ExitFailure = 1 // Usage error or any stage failure
	ExitPanic   = 3 // Internal panic (unexpected crash)
)

const (
	// DefaultRelation is the relation written to the output store.
	DefaultRelation = "message_categories"

	// DefaultIDColumn is the join key shared by both sources.
	DefaultIDColumn = "id"

	// DefaultCategoriesColumn holds the delimited category tokens.
	DefaultCategoriesColumn = "categories"

	// DefaultSeparator joins category tokens inside the categories column.
	DefaultSeparator = ";"

	// DefaultFilterColumn is the binary flag whose out-of-domain value drops a row.
	DefaultFilterColumn = "related"

	// DefaultFilterValue is the out-of-domain value of DefaultFilterColumn.
	DefaultFilterValue = 2

	// DefaultConfigFile is looked up in the working directory when --config is not given.
	DefaultConfigFile = "catload.yaml"

	// LeftSuffix and RightSuffix disambiguate non-key columns present in both sources.
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)
