// Package i18n содержит статическую таблицу строк интерфейса на всех
// поддерживаемых языках и подбор советов по классу болезни.
package i18n

import "mushroom-doctor/internal/domain/entity"

// Классы болезней, которые возвращает модель.
const (
	ClassBacterialBlotch = "Bacterial Blotch"
	ClassDryBubble       = "Dry Bubble"
	ClassHealthy         = "Healthy"
	ClassTrichoderma     = "Trichoderma"
	ClassWilt            = "Wilt"
)

// Table — фиксированный набор строк одного языка.
type Table struct {
	DisclaimerTitle   string
	DisclaimerContent string
	ButtonUnderstand  string
	ChooseImage       string
	PredictButton     string
	Loading           string
	Results           string

	SeverityStrong   string
	SeverityModerate string
	SeverityWeak     string

	AdviceBacterialBlotch string
	AdviceDryBubble       string
	AdviceHealthy         string
	AdviceTrichoderma     string
	AdviceWilt            string
	AdviceGeneric         string

	BasedOnAnalysis string
	WasDetected     string

	OpenCamera    string
	SwitchCamera  string
	Capture       string
	CloseCamera   string
	LanguageTitle string

	NoImage             string
	ImageTooLarge       string
	Failure             string
	InProgress          string
	ImageSelected       string
	NoDetections        string
	CameraUnsupported   string
	CameraNotAccessible string
	CameraNotReady      string
	CameraSwitchFailed  string
	CameraClosed        string
	Insight             string
	Help                string
}

var tables = map[entity.Language]*Table{
	entity.LanguageEnglish: {
		DisclaimerTitle:   "Disclaimer",
		DisclaimerContent: "This Oyster Mushroom Disease Classifier is currently under development. Predictions may not always be accurate and should be used for informational purposes only. Always consult agricultural experts for critical decisions.",
		ButtonUnderstand:  "I Understand",
		ChooseImage:       "Choose a Mushroom Image",
		PredictButton:     "Predict Disease",
		Loading:           "Loading...",
		Results:           "Results:",

		SeverityStrong:   "This is a strong match, indicating a high probability.",
		SeverityModerate: "This is a moderate match. Some caution is advised.",
		SeverityWeak:     "This is a weak match. Re-evaluation may be necessary.",

		AdviceBacterialBlotch: "Ensure good air circulation and avoid overhead watering to prevent spread.",
		AdviceDryBubble:       "Remove infected mushrooms immediately and sanitize the environment.",
		AdviceHealthy:         "Maintain optimal growing conditions to continue healthy development.",
		AdviceTrichoderma:     "Lower humidity levels and remove infected substrates immediately.",
		AdviceWilt:            "Adjust watering schedules and monitor nutrient supply carefully.",
		AdviceGeneric:         "Monitor the affected mushrooms closely and consult an agricultural expert.",

		BasedOnAnalysis: "Based on the analysis, signs of",
		WasDetected:     "were detected.",

		OpenCamera:    "Open Camera",
		SwitchCamera:  "Switch Camera",
		Capture:       "Capture Photo",
		CloseCamera:   "Close Camera",
		LanguageTitle: "Language",

		NoImage:             "Please upload an image.",
		ImageTooLarge:       "The image is too large. Please choose one under 20 MB.",
		Failure:             "Something went wrong. Try again.",
		InProgress:          "A prediction is already in progress.",
		ImageSelected:       "Image received. Press the button to predict.",
		NoDetections:        "No disease was detected with enough confidence.",
		CameraUnsupported:   "Camera is not supported on this device.",
		CameraNotAccessible: "Camera not accessible.",
		CameraNotReady:      "Camera not ready. Please wait a moment and try again.",
		CameraSwitchFailed:  "Could not switch the camera.",
		CameraClosed:        "The camera is not open.",
		Insight:             "AI insight",
		Help:                "Send a photo of a mushroom or open the camera, then press Predict Disease. Commands: /lang, /camera, /switch, /capture, /close, /predict.",
	},
	entity.LanguageFilipino: {
		DisclaimerTitle:   "Paunawa",
		DisclaimerContent: "Ang Oyster Mushroom Disease Classifier na ito ay kasalukuyang nasa ilalim ng pag-unlad. Maaring hindi palaging tama ang mga hula at para lamang sa impormasyon. Kumonsulta pa rin sa mga eksperto sa agrikultura para sa mahahalagang desisyon.",
		ButtonUnderstand:  "Nauunawaan Ko",
		ChooseImage:       "Pumili ng Larawan ng Kabute",
		PredictButton:     "Hulaan ang Sakit",
		Loading:           "Naglo-load...",
		Results:           "Mga Resulta:",

		SeverityStrong:   "Ito ay isang malakas na tugma, nagpapakita ng mataas na posibilidad.",
		SeverityModerate: "Ito ay isang katamtamang tugma. Mag-ingat.",
		SeverityWeak:     "Ito ay isang mahina na tugma. Maaaring kailanganin ang muling pagsusuri.",

		AdviceBacterialBlotch: "Siguraduhing may maayos na daloy ng hangin at iwasan ang pagdidilig sa itaas upang maiwasan ang pagkalat.",
		AdviceDryBubble:       "Agad alisin ang mga apektadong kabute at linisin ang kapaligiran.",
		AdviceHealthy:         "Panatilihin ang mga optimal na kondisyon para magpatuloy ang malusog na pag-unlad.",
		AdviceTrichoderma:     "Bawasan ang mga antas ng halumigmig at agad na alisin ang mga apektadong substrato.",
		AdviceWilt:            "Ayusin ang iskedyul ng pagdidilig at obserbahan ang suplay ng sustansya.",
		AdviceGeneric:         "Bantayang mabuti ang mga apektadong kabute at kumonsulta sa isang eksperto sa agrikultura.",

		BasedOnAnalysis: "Batay sa pagsusuri, mga senyales ng",
		WasDetected:     "ay natukoy.",

		OpenCamera:    "Buksan ang Kamera",
		SwitchCamera:  "Palitan ang Kamera",
		Capture:       "Kumuha ng Larawan",
		CloseCamera:   "Isara ang Kamera",
		LanguageTitle: "Wika",

		NoImage:             "Mangyaring mag-upload ng larawan.",
		ImageTooLarge:       "Masyadong malaki ang larawan. Pumili ng mas maliit sa 20 MB.",
		Failure:             "May nangyaring mali. Subukan muli.",
		InProgress:          "May kasalukuyang hula na isinasagawa.",
		ImageSelected:       "Natanggap ang larawan. Pindutin ang button upang hulaan.",
		NoDetections:        "Walang natukoy na sakit na may sapat na katiyakan.",
		CameraUnsupported:   "Hindi suportado ang kamera sa device na ito.",
		CameraNotAccessible: "Hindi ma-access ang kamera.",
		CameraNotReady:      "Hindi pa handa ang kamera. Maghintay sandali at subukan muli.",
		CameraSwitchFailed:  "Hindi mapalitan ang kamera.",
		CameraClosed:        "Hindi nakabukas ang kamera.",
		Insight:             "Pagsusuri ng AI",
		Help:                "Magpadala ng larawan ng kabute o buksan ang kamera, pagkatapos ay pindutin ang Hulaan ang Sakit. Mga utos: /lang, /camera, /switch, /capture, /close, /predict.",
	},
	entity.LanguageIlocano: {
		DisclaimerTitle:   "Pakaammo",
		DisclaimerContent: "Ti Oyster Mushroom Disease Classifier ket agtultuloy pay ti panagsardengna. Saan a kanayon nga eksakto ti prediction ket para laeng iti impormasyon. Agkonsulta kadagiti eksperto iti agrikultura para kadagiti importanteng desisyon.",
		ButtonUnderstand:  "Maawatan Ko",
		ChooseImage:       "Agpili ti Ladawan ti Kabute",
		PredictButton:     "Ipredict ti Sakit",
		Loading:           "Agkarkar-load...",
		Results:           "Dagiti Resulta:",

		SeverityStrong:   "Nakasagrap a kasla agtultuloy a gundaway, nagpakita ti dakkel a posibilidad.",
		SeverityModerate: "Nakasagrap a kasla agtultuloy a gundaway. Agin-inut.",
		SeverityWeak:     "Nakasagrap a kasla awan ti kabusor. Kasapulan ti panangsurat.",

		AdviceBacterialBlotch: "Siguradwen a nalawag ti aglawlaw ket iwasan ti agtultuloy a pang-dilig tapno malapdaan.",
		AdviceDryBubble:       "Ial-alay dagiti nadadael a kabute ken limpan ti lugar.",
		AdviceHealthy:         "Ipatpatuloy ti optimal nga pag-uneg tapno agtultuloy ti nalusluso nga progreso.",
		AdviceTrichoderma:     "Aglawlaw ti nadumaduma a klima ken alisin dagiti nadadael a substrates kasla uneg.",
		AdviceWilt:            "Aglaksid ti oras ti panangdilig ken ikabina ti nutrisyon nga itedna.",
		AdviceGeneric:         "Imatonan a naimbag dagiti naapektaran a kabute ken agkonsulta iti eksperto iti agrikultura.",

		BasedOnAnalysis: "Base ti analisis, senyales ti",
		WasDetected:     "ket naipakita.",

		OpenCamera:    "Ilukat ti Kamera",
		SwitchCamera:  "Sukatan ti Kamera",
		Capture:       "Agala ti Ladawan",
		CloseCamera:   "Irikep ti Kamera",
		LanguageTitle: "Pagsasao",

		NoImage:             "Pangngaasiyo ta mangi-upload iti ladawan.",
		ImageTooLarge:       "Dakkel unay ti ladawan. Mangpili iti basbassit ngem 20 MB.",
		Failure:             "Adda biddut a napasamak. Padasenyo manen.",
		InProgress:          "Adda pay prediction nga agtultuloy.",
		ImageSelected:       "Naawat ti ladawan. Pinduten ti buton tapno ag-predict.",
		NoDetections:        "Awan ti sakit a nadetektar nga addaan iti umdas a kinasigurado.",
		CameraUnsupported:   "Saan a suportado ti kamera iti daytoy a device.",
		CameraNotAccessible: "Saan a ma-access ti kamera.",
		CameraNotReady:      "Saan pay a nakasagana ti kamera. Aguray bassit ket padasen manen.",
		CameraSwitchFailed:  "Saan a masukatan ti kamera.",
		CameraClosed:        "Saan a nakalukat ti kamera.",
		Insight:             "Analisis ti AI",
		Help:                "Mangipatulod iti ladawan ti kabute wenno ilukat ti kamera, kalpasanna pinduten ti Ipredict ti Sakit. Dagiti bilin: /lang, /camera, /switch, /capture, /close, /predict.",
	},
}

// For возвращает таблицу языка; неизвестный код даёт английскую.
func For(lang entity.Language) *Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[entity.DefaultLanguage]
}

// Has сообщает, есть ли таблица для языка.
func Has(lang entity.Language) bool {
	_, ok := tables[lang]
	return ok
}
