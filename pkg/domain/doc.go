// Package domain contains the entities shared by the evaluation pipeline:
// teams read from the course spreadsheet, the results collected for them, and
// the run that groups those results. The types are free of infrastructure
// concerns so that readers, evaluators, reports and storage can share them.
package domain
