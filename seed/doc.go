// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed loads the demo dataset every session starts from.

The default dataset is embedded from seed.yaml. A different file can be
supplied with the -seed flag (or SEED_FILE); it uses the same YAML layout and
is validated the same way:

	current_user_id: partner-1
	partners:
	  - {id: partner-1, name: Demo User, avatar: D}
	applications:
	  - id: app-1
	    company_name: NeuralSafe AI
	    submitted_at: 2025-01-10T10:00:00Z
	    stage: voting

Sessions never mutate a Dataset directly; they take a Clone.
*/
package seed
