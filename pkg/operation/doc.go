/*
Package operation wires the subrc run pipeline from validated arguments to
a replaced target file.

	+-----------+    +--------+    +----------+    +--------+
	| Validator | -> | Backup | -> | Compiler | -> | Engine |
	+-----------+    +--------+    +----------+    +--------+

🎯 Purpose:
- Validates the rules and target paths before any side effect
- Creates the pre-mutation backup and surfaces its path
- Compiles the rule list and decides between no-op, dry-run, and substitution
- Reports the outcome through the user logger

🔄 Flow:
1. Stat both files; refuse protected targets
2. Back up the target (skipped for dry runs)
3. Compile the rules file; zero rules ends the run successfully
4. Apply the rules and atomically replace the target

📝 Design Philosophy:
The operation package holds sequencing only. Parsing lives in rules, file
rewriting in engine, copying in backup, output in status. Every failure
path leaves the target byte-for-byte untouched; the backup is the sole
recovery mechanism and is never deleted here.

🔍 Example:

	op, err := operation.New(operation.Options{
		RulesFile:  "rules.csv",
		TargetFile: "notes.txt",
		Settings:   settings,
		Backups:    backup.New(),
		UserLogger: status.NewUserLogger(ctx),
	})
	if err != nil {
		return err
	}
	return op.Execute(ctx)
*/
package operation
