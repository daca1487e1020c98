// Package smoothing fits 1-D smoothers over weekly surveillance series.
//
// Two independent estimators are applied to the same noisy series so chart
// consumers can compare them:
//
//   - [FitSpline]: a cubic smoothing spline in the Reinsch formulation,
//     with the roughness penalty chosen automatically by generalized
//     cross-validation. Fitting linear data reproduces it exactly for any
//     penalty, since a straight line has zero roughness.
//   - [FitKernel]: a Nadaraya-Watson local-regression estimator with a
//     Gaussian kernel and a fixed default bandwidth.
//
// Both return raw predictions at the original abscissae; predictions can be
// negative and the caller clamps them, because counts cannot be.
package smoothing
