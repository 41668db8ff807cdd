package engine

import "pumpjack_simulator/internal/models"

// evaluateAlarms returns st with every alarm flag recomputed from its numeric
// fields and the limits table. Flags never depend on previous values.
func evaluateAlarms(st models.PumpState, limits models.OperatingLimits) models.PumpState {
	st.HighMotorAmps = st.MotorAmps > limits[models.QuantityMotorAmps].Threshold
	st.HighGearboxTemp = st.GearboxTemp > limits[models.QuantityGearboxTemp].Threshold
	st.HighRodLoad = st.RodLoad > limits[models.QuantityRodLoad].Threshold
	st.LowProduction = st.ProductionRate < limits[models.QuantityProductionRate].Threshold
	return st
}
