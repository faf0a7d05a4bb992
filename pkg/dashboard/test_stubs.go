package dashboard

type rendererStub struct {
	maxChars      int
	weeklyBuckets []WeekBucket
	weeklyPath    string
	emptyMessages []string
}

func newRendererStub() *rendererStub {
	return &rendererStub{maxChars: 20}
}

func (s *rendererStub) MaxLabelChars() int {
	return s.maxChars
}

func (s *rendererStub) RenderWeekly(buckets []WeekBucket, path string) error {
	s.weeklyBuckets = buckets
	s.weeklyPath = path
	return nil
}

func (s *rendererStub) RenderEmpty(message string, path string) error {
	s.emptyMessages = append(s.emptyMessages, message)
	return nil
}

func (s *rendererStub) reset() {
	s.weeklyBuckets = nil
	s.weeklyPath = ""
	s.emptyMessages = nil
}
