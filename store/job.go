package store

// Job is a job posting node. Optional display fields are pointers so the
// response layer can distinguish "absent" from "empty".
type Job struct {
	ID               string
	Title            string
	Company          *string
	Location         *string
	PostingURL       *string
	NormalizedSalary *float64
	// Embedding is the job title embedding in the shared 384-dim space,
	// or nil when the embedding runner has not processed the job yet.
	Embedding []float64
}
