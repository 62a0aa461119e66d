package dataset

// ComputeAggregate derives the summary statistics for a validated row
// sequence in a single left-to-right pass. Averages are 0.0 for an empty
// input rather than NaN; Validate already rejects empty tables, but this
// function does not assume its precondition holds.
func ComputeAggregate(records []EquipmentRecord) Aggregate {
	agg := Aggregate{
		TotalRecords:     len(records),
		TypeDistribution: make(map[string]int),
	}

	var sumFlowrate, sumPressure, sumTemperature float64
	for _, rec := range records {
		sumFlowrate += rec.Flowrate
		sumPressure += rec.Pressure
		sumTemperature += rec.Temperature
		agg.TypeDistribution[rec.Type]++
	}

	if agg.TotalRecords > 0 {
		n := float64(agg.TotalRecords)
		agg.AvgFlowrate = sumFlowrate / n
		agg.AvgPressure = sumPressure / n
		agg.AvgTemperature = sumTemperature / n
	}

	return agg
}
