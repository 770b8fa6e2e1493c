package dataprep

import "github.com/go-gota/gota/dataframe"

// Stage is one step of a frame-to-frame cleaning pipeline.
type Stage func(dataframe.DataFrame) (dataframe.DataFrame, error)

// Pipeline chains stages; each stage consumes the previous stage's output.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run applies the stages in order, stopping at the first error.
func (p *Pipeline) Run(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	var err error
	for _, stage := range p.stages {
		df, err = stage(df)
		if err != nil {
			return df, err
		}
	}
	return df, nil
}
