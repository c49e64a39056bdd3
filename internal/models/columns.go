package models

// Disease category columns, in classification priority order.
const (
	ColCardiovascular   = "1. Enfermedad cardiovascular"
	ColHypertension     = "2. Hipertensión arterial"
	ColDiabetes         = "3. Diabetes mellitus"
	ColRenal            = "4. Enfermedad renal"
	ColHepatic          = "5. Enfermedad hepatica"
	ColOsteo            = "6. Osteoporosis/ Artrosis/ Osteoartrosis"
	ColGastrointestinal = "7. Enfermedad gastrointestinal"
	ColThyroid          = "8. Hipotiroidismo/Hipertiroidismo"
	ColCancer           = "9. Cancer"
)

// DiseaseColumns lists the category columns in report order.
var DiseaseColumns = []string{
	ColCardiovascular,
	ColHypertension,
	ColDiabetes,
	ColRenal,
	ColHepatic,
	ColOsteo,
	ColGastrointestinal,
	ColThyroid,
	ColCancer,
}

// ColRAM is the column highlighted in red when set.
const ColRAM = "RAM"

// RAMDetailColumns are filled with 0 when no adverse reaction was reported
// and left empty for the pharmacovigilance team otherwise.
var RAMDetailColumns = []string{
	"MEDICAMENTO_SOSPECHOSO",
	"ESTADO ACUTAL RAM",
	"0NO 2 SI",
	"TIPO",
	"DEFINIDO POR COMITE FV",
	"0 NO 1 SI",
	"ADMINISTRACION ERRONEA DEL MEDICAMENTO",
	"CARACTERISTICAS PERSONALES",
	"CONVERSACION INADECUADA",
	"CONTRAINDICACION",
	"DOSIS PAUTAS",
	"DUPLICIDAD",
	"ERRROES EN LA DISPENSACION",
	"ERRORES EN LA PRESCIRPCION",
	"IN CUMPLIMIENTO",
	"INTERACCIONES",
	"OTROS PROBLEMAS",
	"PROBAVBILIDAD DE EFECTOS ADVERSOS",
	"PROBLEMA DE SALUD",
	"OTROS",
}

// ReportColumns is the header of the coded report. The names are consumed
// verbatim by the upload template downstream, spelling included.
var ReportColumns = buildReportColumns()

func buildReportColumns() []string {
	cols := []string{
		"Nombre",
		"Tipo Identificación",
		"Edad",
		"Grado Escolaridad",
		"Género",
		"Gestación",
		"Consumo de SPA",
		"4. Consumo de alcohol o drogas que interacciona con medicamento",
		"Trastornos mentales",
		"Factores relacionados con el trato paciente",
		"hospitalizacion ultimos 6 meses",
	}
	cols = append(cols, DiseaseColumns...)
	cols = append(cols,
		"10. Otros",
		"¿Cuáles otras?",
		"4. Presenta más de 2 comorbilidades de la lista \n2. Presenta 1 comorbilidad de la lista",
		"APLICA CLINIMETRÍA\n0. No, requiere de otro parametro\n4. Si, pero es > a 2 meses",
		"das28_clasificacion",
		"sledai_clasificacion",
		"asdas_clasificacion",
		"polimedicacion",
		"Cambio en Medicacion",
		"INICIO TRATAMIENTO  BIOLOGICO / ANTIYACK",
		"INICIO TRATAMIENTO DMARDS",
		"ADHERENCIA MIROSKY GREEN BIOLOGICO",
		"ADHERENCIA MIROSKY GREEN JACK",
		"ADHERENCIA MIROSKY DMARDS",
		"ADHERENCIA A OTROS TRATAMIENTOS FARMACOLOGICOS",
		"Dispensacion parenteral",
		"Dispesacion medicamentos oral",
		"Interacciones 1si 2no",
		"interacciones mayores que requieran",
		"clasificacion relevancia",
		"mecanismo farmadinamicas",
		"farmaco",
		"descripcion de las molecula",
		"columna 0no 1 si de ram",
		ColRAM,
	)
	return append(cols, RAMDetailColumns...)
}

// TemplateColumns is the header of the empty clinical-format workbook.
var TemplateColumns = []string{
	"Motivo de no atención", "Fecha de clasificación", "Número de documento del paciente",
	"Nombre completo del paciente", "Tipo de documento", "Edad (años)", "Nivel educativo",
	"Sexo", "Prioridad inmediata", "Consumo de SPA", "Interacción SPA y medicamento",
	"Diagnóstico psiquiátrico", "Conocimiento enfermedad/tratamiento",
	"Hospitalización en últimos 6 meses", "1. Enfermedad cardiovascular",
	"2. Hipertensión arterial", "3. Diabetes mellitus", "4. Enfermedad renal",
	"5. Enfermedad hepática", "6. Osteoporosis / Artrosis / Osteoartrosis",
	"7. Enfermedad gastrointestinal", "8. Hipotiroidismo / Hipertiroidismo", "9. Cáncer",
	"10. Otros", "¿Cuáles otras?", "Clasificación comorbilidades", "Aplica clinimetría",
	"DAS28 (AR)", "SLEDAI (LES)", "ASDAS (EAS)", "Polifarmacia (>5 medicamentos)",
	"Cambio de medicación", "Inicio del tratamiento", "Inicio de síntomas",
	"Adherencia biológico", "Adherencia inhibidor JAK", "Adherencia tratamiento convencional DMARDs",
	"Adherencia general", "Dispensación parenteral", "Dispensación oral",
	"¿Interacciones identificadas?", "Relevancia de interacciones", "Mecanismo de interacción",
	"Tipo de interacción", "Descripción moléculas que interactúan", "¿RAM presente?",
	"Severidad RAM", "Medicamento sospechoso", "Estado actual de la RAM",
	"¿Fallo terapéutico?", "Tipo de fallo terapéutico", "Definido por comité FV",
	"¿Problema relacionado con medicamento?", "Tipo de problema relacionado con medicamento",
}
