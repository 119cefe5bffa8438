package fieldmap

// Canonical field keys. The row parser switches on these; everything the
// alias table resolves to must be listed here.
const (
	// Contract
	KeyContractNumber  = "contract_number"
	KeyPONumber        = "po_number"
	KeyContractDate    = "contract_date"
	KeySupplierName    = "supplier_name"
	KeyProductName     = "product_name"
	KeyProductGrade    = "product_grade"
	KeyQuantityOrdered = "quantity_ordered"
	KeyUnitPrice       = "unit_price"
	KeyCurrency        = "currency"
	KeyDeliveryTerms   = "delivery_terms"
	KeyDestination     = "destination"
	KeySeaLand         = "sea_land"
	KeyContractStatus  = "contract_status"
	KeyPaymentTerms    = "payment_terms"

	// Shipment
	KeySTONumber          = "sto_number"
	KeyShipmentID         = "shipment_id"
	KeySTOQuantity        = "sto_quantity"
	KeyShippingLine       = "shipping_line"
	KeyReadinessDate      = "readiness_date"
	KeySailDate           = "sail_date"
	KeyBLNumber           = "bl_number"
	KeyBLDate             = "bl_date"
	KeyQuantityLoaded     = "quantity_loaded"
	KeyQuantityDischarged = "quantity_discharged"

	// Shipment port legs; the leg is inferred from the header's location label
	KeyPortName     = "port_name"
	KeyPortQuantity = "port_quantity"
	KeyLoadingRate  = "loading_rate"
	KeyETAArrival   = "eta_arrival"
	KeyATAArrival   = "ata_arrival"
	KeyETABerthing  = "eta_berthing"
	KeyATABerthing  = "ata_berthing"
	KeyETACommenced = "eta_commenced"
	KeyATACommenced = "ata_commenced"
	KeyETACompleted = "eta_completed"
	KeyATACompleted = "ata_completed"

	// Quality measurements; location inferred the same way as port legs
	KeyFFA      = "ffa"
	KeyMoisture = "moisture"
	KeyDOBI     = "dobi"
	KeyColor    = "color"
	KeyDirtSand = "dirt_sand"
	KeyStone    = "stone"

	// Trucking
	KeyTruckingOperationID = "trucking_operation_id"
	KeyTruckingCompany     = "trucking_company"
	KeyVehicleNumber       = "vehicle_number"
	KeyLoadingLocation     = "loading_location"
	KeyDischargeLocation   = "discharge_location"
	KeyQuantitySent        = "quantity_sent"
	KeyQuantityDelivered   = "quantity_delivered"
	KeyDepartureDate       = "departure_date"
	KeyArrivalDate         = "arrival_date"

	// Payment
	KeyPaymentDueDate   = "payment_due_date"
	KeyDPDate           = "dp_date"
	KeyPayoffDate       = "payoff_date"
	KeyPaymentDeviation = "payment_deviation"

	// Vessel
	KeyVesselName     = "vessel_name"
	KeyIMONumber      = "imo_number"
	KeyVesselFlag     = "vessel_flag"
	KeyVesselCapacity = "vessel_capacity"
)
