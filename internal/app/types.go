package app

type ApplyRequest struct {
	BindingsRoot    string
	ContinueOnError bool
}

type ApplyResult struct {
	Applied int
	Failed  int
}

type CheckRequest struct {
	BindingsRoot    string
	ContinueOnError bool
}

type CheckResult struct {
	Checked  int
	Outdated int
	Failed   int
}
