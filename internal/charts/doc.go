// Package charts turns aggregates into labeled chart data and renders it.
//
// Dashboard builds the daily trend, average weekly usage and hourly peak
// charts; a Plotter draws each one to an image file. GonumPlotter is the
// gonum/plot implementation.
package charts
