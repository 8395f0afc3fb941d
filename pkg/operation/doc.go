/*
Package operation maps each cxp command to one Operation and runs it.

	+-------------+
	|   Runner    |
	| (flock opt) |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| copy, cut,  |
	| paste, ...  |
	+------+------+
	       |
	+------+------+
	|  clipboard  |
	|   .Store    |
	+-------------+

🎯 Purpose:
- Turns a command and its operands into a single store call
- Renders listings through the listing package
- Reports outcomes through log.Logger

🔄 Flow:
1. The command builds an Operation from Options
2. OperationRunner.Run tags the context logger with the operation name
3. With a lock path set, the runner holds an advisory file lock
4. Operation.Execute calls the store and prints the result

Operations never retry and never roll back: a failed entry is reported and
the remaining entries still run.
*/
package operation
