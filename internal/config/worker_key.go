package config

type WorkerKeyStruct struct{}

func NewWorkerKeyStruct() *WorkerKeyStruct {
	return &WorkerKeyStruct{}
}

// PersistScoresQueue is the Redis list drained by the score worker into
// the quizscores table.
func (r *WorkerKeyStruct) PersistScoresQueue() string {
	return "worker:persist_scores"
}

var WorkerKey = NewWorkerKeyStruct()
