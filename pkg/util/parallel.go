package util

import (
	"fmt"
	"sync"
)

// ParBatchJob represents an atomic division of work which is composed of one or
// more jobs.  The idea is that all of these jobs must be computed together in
// one large batch, and cannot be further broken down.
type ParBatchJob interface {
	// Get the job identifies for all jobs in this batch.
	Jobs() []uint
	// Get the jobs on which this at least one job in this batch dependend.  In
	// otherwords, all of the return jobs must be complete before this batch can
	// run.
	Dependencies() []uint
	// Run this batch job
	Run() error
}

// Job is a single unit of work, identified by a number, which can only run once
// the jobs it depends on are complete.
type Job struct {
	ID    uint
	After []uint
	Fn    func() error
}

// NewJob constructs a job with some (optional) dependencies.
func NewJob(id uint, fn func() error, after ...uint) Job {
	return Job{id, after, fn}
}

// Jobs returns the identifier of this job.
func (p Job) Jobs() []uint {
	return []uint{p.ID}
}

// Dependencies returns the jobs which must complete before this one.
func (p Job) Dependencies() []uint {
	return p.After
}

// Run this job.
func (p Job) Run() error {
	return p.Fn()
}

// ParExec executes a set of jobs in parallel using go-routines.  Execution
// proceeds in rounds: every batch whose dependencies are complete runs
// concurrently, and the next round starts once they have all finished.  The
// first error encountered (in worklist order) is returned, and no further
// rounds are started.
func ParExec[J ParBatchJob](worklist []J) error {
	var ready []J
	// Initialise the done set
	todo := initToDoList(worklist)
	// Iterate until all batches complete
	for len(worklist) > 0 {
		ready, worklist = selectReady(todo, worklist)
		//
		if len(ready) == 0 {
			return fmt.Errorf("no job is ready to run (%d remaining)", len(worklist))
		}
		// Execute this round
		var (
			errs = make([]error, len(ready))
			wg   sync.WaitGroup
		)
		//
		for i, batch := range ready {
			wg.Add(1)
			//
			go func() {
				defer wg.Done()
				errs[i] = batch.Run()
			}()
		}
		//
		wg.Wait()
		//
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
		// Mark all jobs in this round as done
		for _, batch := range ready {
			for _, j := range batch.Jobs() {
				todo[j] = false
			}
		}
	}
	// Done
	return nil
}

// Initialise the set of jobs which remain to be completed.  Jobs which are not
// present in the batch are assumed to be already completed.
func initToDoList[J ParBatchJob](batches []J) []bool {
	n := uint(0)
	// Determine largest job identifier
	for _, b := range batches {
		for _, j := range b.Jobs() {
			n = max(n, j+1)
		}
	}
	// Construct todo list
	todo := make([]bool, n)
	// Initialise jobs
	for _, b := range batches {
		for _, j := range b.Jobs() {
			todo[j] = true
		}
	}
	// Done
	return todo
}

// Split the worklist into those batches which are ready to run, and those
// which are not.
func selectReady[J ParBatchJob](todo []bool, worklist []J) ([]J, []J) {
	var ready, waiting []J
	//
	for _, b := range worklist {
		if readyJob(todo, b) {
			ready = append(ready, b)
		} else {
			waiting = append(waiting, b)
		}
	}
	//
	return ready, waiting
}

// ReadyJob determines whether or not a given batch job is ready to run, or not.
// Specifically, a job is ready when all its dependencies have been completed.
func readyJob[J ParBatchJob](todo []bool, batch J) bool {
	// Check dependencies
	for _, j := range batch.Dependencies() {
		if j < uint(len(todo)) && todo[j] {
			// Dependent job remains to be done.  Therefore, this job is not
			// ready to run.
			return false
		}
	}
	// All dependencies done, so this batch is ready.
	return true
}
