package contracts

// Expectation labels understood by the verifier. The vocabulary is open:
// manifests may carry other labels, which verify as errors.
const (
	ExpectExist   = "exist"
	ExpectMD5     = "md5"
	ExpectMissing = "missing"
	ExpectIgnore  = "ignore"
)

const (
	ActionParse    = "parse"
	ActionList     = "list"
	ActionValidate = "validate"
)

const (
	OperationList    = "list"
	OperationMD5List = "md5list"
)

// CommentMarker starts a comment line in manifests and rule files.
const CommentMarker = "'"

type ExpectationRule struct {
	Mask  string
	Label string
}

// DowngradeExpectation weakens a content check to an existence check when
// the action doesn't call for hashing.
func DowngradeExpectation(action, label string) string {
	if action == ActionList && label == ExpectMD5 {
		return ExpectExist
	}
	return label
}

func IsAction(action string) bool {
	return action == ActionParse || action == ActionList || action == ActionValidate
}

func IsOperation(operation string) bool {
	return operation == OperationList || operation == OperationMD5List
}
