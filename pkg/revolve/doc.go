/*
Package revolve produces checkpointing schedules for reverse-mode (adjoint)
computation over time-stepped simulations.

Given a forward computation of max_n steps and a bounded checkpoint budget
across a tiered storage hierarchy (fast RAM, slow disk), a Schedule emits a
deterministic stream of actions that an external driver executes to advance
the forward solver, save or restore forward state, and run the adjoint
solver backward, minimizing recomputation while respecting storage
capacities.

# Basic Usage

	sched, err := revolve.NewRevolve(revolve.RevolveParams{
	    MaxN:         4,
	    SnapsInRAM:   2,
	})
	if err != nil {
	    log.Fatal(err)
	}

	for {
	    action := sched.NextAction()
	    driver.Apply(action)
	    if _, ok := action.(revolve.EndReverse); ok {
	        break
	    }
	}

# Algorithm Families

The library ships the classical Revolve schedule and its disk-aware
descendants (DiskRevolve, PeriodicDiskRevolve, HRevolve), two binomial
distribution schedules (Multistage, TwoLevel), a single-budget schedule
(Mixed), and three trivial schedules (None, SingleMemoryStorage,
SingleDiskStorage) for baselines and testing.

# Online Schedules

None, SingleMemoryStorage, SingleDiskStorage, and TwoLevel do not require
max_n at construction. The driver calls Finalize once the forward
computation's length is known.

# Determinism

Two schedules constructed with identical parameters emit byte-identical
action streams. This is load-bearing: see the golden subpackage for the
regression corpus that enforces it.
*/
package revolve
