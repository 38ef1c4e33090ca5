// Package model defines the core data structures used throughout gwflow.
//
// This package contains the following main types:
//   - Observation: A single well head measurement with location and aquifer
//   - Parameters: The fitting parameters governing one analysis run
//   - FitResult: The fitted conic potential model at one grid target
//   - AnalysisRun: The aggregate result of analyzing one venue
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (spatial, fit, analysis, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
