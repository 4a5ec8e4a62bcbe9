// internal/nlu/intent/patterns.go
package intent

import (
	"github.com/hydropony/junction2025-googlecloud/internal/nlu"
)

// w wraps an alternation in accent-safe word boundaries.
func w(expr string) string { return nlu.Word(expr) }

// atStart anchors an alternation to the beginning of the utterance.
func atStart(expr string) string { return `^(?:` + expr + `)(?:[^\p{L}\p{N}]|$)` }

// patternSpec lists the uncompiled pattern sources for one intent. English
// doubles as the fallback when a language has no patterns of its own.
type patternSpec struct {
	en []string
	fi []string
	sv []string
}

// specFor maps every classifiable intent to its pattern bank. The switch is
// exhaustive over the closed intent set, so adding an intent without
// patterns shows up immediately.
func specFor(in nlu.Intent) patternSpec {
	switch in {
	case nlu.IntentConfirmSubstitution:
		return patternSpec{
			en: []string{
				// Positive confirmation words; negation is handled separately.
				w(`yes|yeah|yep|ok|okay|accept|agreed|sure|fine|good|approved|confirm|confirmed`),
				w(`i accept|i agree|that works|sounds good|go ahead|proceed`),
				w(`i'?ll take|i want|i'?d like|i'?ll accept|take it|give me|send me`) + `.*` + w(`replacement|substitute|alternative|instead`),
				w(`replace|substitute|swap`) + `.*` + w(`it|them|this|that`),
			},
			fi: []string{
				w(`kyllä|joo|okei|hyväksyn|sopii|hyvä|hyväksytty|vahvistan|sama käy|sopii mulle|ota se|anna se|lähetä se`),
				w(`otan|haluan|saan`) + `.*` + w(`korvauksen|vaihtoehdon|tilalle`),
			},
			sv: []string{
				w(`ja|okej|acceptera|godkänd|bekräfta|det fungerar|det låter bra|gå vidare|jag tar|jag vill ha|skicka`),
				w(`ersättning|alternativ|istället`),
			},
		}
	case nlu.IntentRejectSubstitution:
		return patternSpec{
			en: []string{
				w(`no|nope|nah|decline|reject|refuse`),
				w(`don'?t want|don'?t need|don'?t like|don'?t accept`),
				w(`i don'?t want|i don'?t need|i don'?t like|i don'?t accept`),
				w(`no thanks|no thank you|not that|not interested|not acceptable`),
				w(`skip|cancel|remove|without|without it|leave it out|don'?t send|don'?t include`),
				w(`not|don'?t|won'?t|can'?t`) + `.*` + w(`agree|accept|want|need|like`),
			},
			fi: []string{
				w(`ei|en halua|en tarvitse|hylkään|kieltäydyn|ei kiitos|ohita|poista|peruuta`),
				w(`ilman|jätä pois|älä lähetä|älä sisällytä`),
			},
			sv: []string{
				w(`nej|avvisa|jag vill inte|jag behöver inte|inte intresserad|hoppa över|ta bort|avbryt`),
				w(`utan|utan den|lämna bort|skicka inte|inkludera inte`),
			},
		}
	case nlu.IntentRequestCallback:
		return patternSpec{
			en: []string{
				w(`call me|call back|callback|speak to|talk to|human|person|agent|representative|customer service`),
				w(`i want to|i need to|can i|may i|i would like to`) + `.*` + w(`speak|talk|call`),
				w(`contact me|reach me|get in touch`),
				w(`speak to|talk to`) + `.*` + w(`someone|human|person|agent|representative`),
				w(`i need|i want`) + `.*` + w(`to speak|to talk|to call|someone|human|person`),
			},
			fi: []string{
				w(`soita|soita takaisin|puhu|ihminen|henkilö|asiakaspalvelu|edustaja`),
				w(`haluan|tarvitsen|voinko`) + `.*` + w(`puhua|soittaa`),
				w(`ota yhteyttä|yhteydenotto`),
			},
			sv: []string{
				w(`ring mig|ring tillbaka|tala med|människa|person|agent|kundtjänst`),
				w(`jag vill|jag behöver|kan jag`) + `.*` + w(`tala|prata|ringa`),
				w(`kontakta mig|nå mig`),
			},
		}
	case nlu.IntentReportIssue:
		return patternSpec{
			en: []string{
				w(`missing|missed|didn'?t receive|did not receive|not received|never received|didn'?t get|did not get|not got|wrong|incorrect|damaged|broken|defective|problem|issue|complaint`),
				w(`item|product|order|delivery`) + `.*` + w(`missing|wrong|damaged|broken|not here|not delivered|didn'?t arrive|did not arrive`),
				w(`there'?s|there is|i have|i'?m missing|i am missing`) + `.*` + w(`problem|issue|complaint|missing`),
				w(`i didn'?t|i did not|i haven'?t|i have not`) + `.*` + w(`receive|get|obtain`),
				// Quantity discrepancy: "only 2, not 3"
				w(`only|just|merely`) + `.*` + w(`\d+`) + `.*` + w(`not|instead of|but not|but got|but received`) + `.*` + w(`\d+`),
				// "should be 3 but got 2"
				w(`should be|should have|expected|supposed to be`) + `.*` + w(`\d+`) + `.*` + w(`but|got|received|have|is|are`) + `.*` + w(`\d+`),
				// "I see there is only 2"
				w(`i see|i notice|i notice that|there is|there are`) + `.*` + w(`only|just|merely`) + `.*` + w(`\d+`),
				w(`quantity|amount|number`) + `.*` + w(`wrong|incorrect|not right|not correct|doesn'?t match|does not match`),
				// "there is no X" / "not in my order" phrasing
				w(`there is|there'?s|there are`) + `.*` + w(`no|not`) + `.*` + w(`in|from|with`) + `.*` + w(`my|the`) + `.*` + w(`order|delivery`),
				w(`in|from|with`) + `.*` + w(`my|the`) + `.*` + w(`order|delivery`) + `.*` + w(`there is|there'?s|there are`) + `.*` + w(`no|not`),
				w(`not|no`) + `.*` + w(`in|from|with`) + `.*` + w(`my|the`) + `.*` + w(`order|delivery`),
				w(`my|the`) + `.*` + w(`order|delivery`) + `.*` + w(`doesn'?t|does not|has no|have no|is missing|are missing`),
				w(`there is|there'?s`) + `.*` + w(`no|not`) + `.*` + w(`product|item|thing`),
			},
			fi: []string{
				w(`puuttuu|puuttui|ei tullut|ei saapunut|väärä|vahingoittunut|rikki|viallinen|ongelma|valitus`),
				w(`tuote|tilaus|toimitus`) + `.*` + w(`puuttuu|väärä|vahingoittunut|rikki|ei täällä|ei toimitettu`),
				w(`minulla on|siellä on`) + `.*` + w(`ongelma|valitus`),
			},
			sv: []string{
				w(`saknas|saknades|fick inte|mottog inte|fel|skadad|trasig|defekt|problem|klagomål`),
				w(`produkt|beställning|leverans`) + `.*` + w(`saknas|fel|skadad|trasig|inte här|inte levererad`),
				w(`det finns|jag har`) + `.*` + w(`problem|klagomål`),
			},
		}
	case nlu.IntentConfirmDelivery:
		return patternSpec{
			en: []string{
				w(`received|got it|arrived|delivered|everything is|all good|all here|complete|perfect|thank you`),
				w(`delivery|order`) + `.*` + w(`received|arrived|here|complete|good|perfect`),
				w(`everything|all items`) + `.*` + w(`here|received|arrived|good`),
			},
			fi: []string{
				w(`sain|tuli|saapui|toimitettu|kaikki on|kaikki hyvin|valmis|täydellinen|kiitos`),
				w(`toimitus|tilaus`) + `.*` + w(`saapui|täällä|valmis|hyvä|täydellinen`),
				w(`kaikki|kaikki tuotteet`) + `.*` + w(`täällä|saapui|hyvä`),
			},
			sv: []string{
				w(`mottog|kom|anlände|levererad|allt är|allt bra|komplett|perfekt|tack`),
				w(`leverans|beställning`) + `.*` + w(`anlände|här|komplett|bra|perfekt`),
				w(`allt|alla produkter`) + `.*` + w(`här|anlände|bra`),
			},
		}
	case nlu.IntentQueryOrderStatus:
		return patternSpec{
			en: []string{
				w(`status|where is|when will|track|tracking|location|when|where`) + `.*` + w(`order|delivery|package|shipment`),
				w(`what|when|where`) + `.*` + w(`order|delivery|package`),
				w(`is my|check my|my order|order status`),
				// "I have to get it tomorrow"
				w(`i need|i want|i have to`) + `.*` + w(`get|receive|have`) + `.*` + w(`it|order|delivery`),
			},
			fi: []string{
				w(`tila|missä on|milloin|seuranta|sijainti|missä`) + `.*` + w(`tilaus|toimitus|paketti`),
				w(`mikä|milloin|missä`) + `.*` + w(`tilaus|toimitus`),
				w(`minun tilaus|tilauksen tila|tarkista tilaus`),
			},
			sv: []string{
				w(`status|var är|när kommer|spårning|plats|när|var`) + `.*` + w(`beställning|leverans|paket`),
				w(`vad|när|var`) + `.*` + w(`beställning|leverans`),
				w(`min beställning|beställningsstatus|kolla beställning`),
			},
		}
	case nlu.IntentProvideFeedback:
		return patternSpec{
			en: []string{
				w(`feedback|review|rating|rate|comment|opinion|suggestion|improve`),
				w(`how was|how did|what do you think|tell us|let us know`),
				w(`i want to|i'?d like to`) + `.*` + w(`give|provide|leave`) + `.*` + w(`feedback|review|comment`),
			},
			fi: []string{
				w(`palautetta|arvostelu|arvio|kommentti|mielipide|ehdotus|parantaa`),
				w(`miten|mitä mieltä|kerro meille`),
				w(`haluan|haluaisin`) + `.*` + w(`antaa|jättää`) + `.*` + w(`palautetta|arvostelua|kommenttia`),
			},
			sv: []string{
				w(`feedback|recension|betyg|kommentar|åsikt|förslag|förbättra`),
				w(`hur var|hur gick|vad tycker du|berätta|låt oss veta`),
				w(`jag vill|jag skulle vilja`) + `.*` + w(`ge|lämna`) + `.*` + w(`feedback|recension|kommentar`),
			},
		}
	case nlu.IntentQuerySubstitution:
		return patternSpec{
			en: []string{
				w(`what|which|tell me about`) + `.*` + w(`replacement|substitute|alternative|substitution`),
				w(`what did you|what are you`) + `.*` + w(`suggest|propose|recommend|offer`),
				w(`what.*replacement|which.*substitute|what.*alternative`),
				w(`tell me|show me|what is`) + `.*` + w(`the replacement|the substitute|the alternative`),
			},
			fi: []string{
				w(`mikä|mitä|kerro`) + `.*` + w(`korvaus|vaihtoehto|korvaava`),
				w(`mikä on|mitä on`) + `.*` + w(`korvaus|vaihtoehto`),
				w(`kerro|näytä`) + `.*` + w(`korvaus|vaihtoehto`),
			},
			sv: []string{
				w(`vad|vilken|berätta`) + `.*` + w(`ersättning|alternativ|ersättare`),
				w(`vad är|vilken är`) + `.*` + w(`ersättning|alternativ`),
				w(`berätta|visa`) + `.*` + w(`ersättning|alternativ`),
			},
		}
	case nlu.IntentThankYou:
		return patternSpec{
			en: []string{
				w(`thank you|thanks|thank|appreciate|appreciated|much appreciated|grateful`),
				w(`thanks a lot|thank you very much|thank you so much`),
				w(`i appreciate|i'm grateful|many thanks`),
			},
			fi: []string{
				w(`kiitos|kiitoksia|kiitän|kiitoksia paljon|paljon kiitoksia`),
				w(`kiitos avusta|kiitos paljon`),
			},
			sv: []string{
				w(`tack|tack så mycket|tusen tack|tackar`),
				w(`jag tackar|tack för hjälpen`),
			},
		}
	case nlu.IntentChangeDelivery:
		return patternSpec{
			en: []string{
				w(`change|modify|reschedule|move|shift`) + `.*` + w(`delivery|deliver|delivery time|delivery date|delivery address`),
				w(`different|another|new`) + `.*` + w(`time|date|address|location|place`) + `.*` + w(`delivery|deliver`),
				w(`can i|can you|i want to|i need to|i have to`) + `.*` + w(`change|reschedule|modify|get|receive`) + `.*` + w(`delivery|deliver|it|order`),
				w(`deliver|delivery`) + `.*` + w(`to|at|on`) + `.*` + w(`different|another|new`),
				w(`i need|i want|i have to`) + `.*` + w(`get|receive|have`) + `.*` + w(`it|order|delivery`) + `.*` + w(`tomorrow|today|monday|tuesday|wednesday|thursday|friday|saturday|sunday`),
				w(`need|want|have to`) + `.*` + w(`it|order|delivery`) + `.*` + w(`tomorrow|today|by|on|at`),
			},
			fi: []string{
				w(`muuta|vaihda|siirrä|uudelleen`) + `.*` + w(`toimitus|toimitusaika|toimituspäivä|toimitusosoite`),
				w(`eri|toinen|uusi`) + `.*` + w(`aika|päivä|osoite|paikka`) + `.*` + w(`toimitus|toimitukselle`),
				w(`voinko|voisitko|haluan|tarvitsen`) + `.*` + w(`muuttaa|vaihtaa|siirtää`) + `.*` + w(`toimitus`),
			},
			sv: []string{
				w(`ändra|flytta|omplanera|förändra`) + `.*` + w(`leverans|leveransdag|leveranstid|leveransadress`),
				w(`annan|ny`) + `.*` + w(`tid|datum|adress|plats`) + `.*` + w(`leverans`),
				w(`kan jag|kan du|jag vill|jag behöver`) + `.*` + w(`ändra|flytta|omplanera`) + `.*` + w(`leverans`),
			},
		}
	case nlu.IntentCancelOrder:
		return patternSpec{
			en: []string{
				w(`cancel|stop|canceled|cancelled`) + `.*` + w(`order|my order|the order|delivery`),
				w(`don'?t|do not`) + `.*` + w(`deliver|send|ship`),
				w(`i want to|i need to|please`) + `.*` + w(`cancel|stop`) + `.*` + w(`order|delivery`),
				w(`cancel|stop|abort`) + `.*` + w(`it|the order|my order`),
			},
			fi: []string{
				w(`peruuta|peru|lopeta`) + `.*` + w(`tilaus|minun tilaus|tilaukseni|toimitus`),
				w(`älä|ei tarvitse`) + `.*` + w(`toimita|lähetä`),
				w(`haluan|tarvitsen|voisitko`) + `.*` + w(`peruuttaa|lopettaa`) + `.*` + w(`tilaus|toimitus`),
			},
			sv: []string{
				w(`avbryt|stoppa|avbokning`) + `.*` + w(`beställning|min beställning|leverans`),
				w(`leverera inte|skicka inte`),
				w(`jag vill|jag behöver|kan du`) + `.*` + w(`avbryta|stoppa`) + `.*` + w(`beställning|leverans`),
			},
		}
	case nlu.IntentQueryProducts:
		return patternSpec{
			en: []string{
				w(`do you have|do you sell|is available|is in stock|have available`),
				w(`what products|which products|what items|tell me about`) + `.*` + w(`do you have|are available`),
				w(`product info|product information|tell me about`) + `.*` + w(`product|item`),
				w(`is|are`) + `.*` + w(`available|in stock|you have`),
				w(`what|which`) + `.*` + w(`products|items`) + `.*` + w(`do you|are available|can i get`),
			},
			fi: []string{
				w(`onko teillä|myyttekö|on saatavilla|on varastossa`),
				w(`mitä tuotteita|mitkä tuotteet|kerro`) + `.*` + w(`onko|myyttekö|on saatavilla`),
				w(`tuotetiedot|tuotteen tiedot|kerro`) + `.*` + w(`tuotteesta`),
				w(`onko|ovatko`) + `.*` + w(`saatavilla|varastossa|teillä`),
			},
			sv: []string{
				w(`har ni|säljer ni|finns|är tillgänglig|är i lager`),
				w(`vilka produkter|vilka varor|berätta`) + `.*` + w(`har ni|finns|är tillgängliga`),
				w(`produktinfo|produktinformation|berätta`) + `.*` + w(`om produkt|om varan`),
				w(`finns|är`) + `.*` + w(`tillgänglig|i lager|har ni`),
			},
		}
	case nlu.IntentGreeting:
		return patternSpec{
			en: []string{
				atStart(`hello|hi|hey|good morning|good afternoon|good evening|greetings`),
				w(`hello|hi|hey`) + `.*` + w(`there|you`),
			},
			fi: []string{
				atStart(`hei|moi|terve|hyvää päivää|päivää|iltaa`),
				w(`hei|moi|terve`) + `.*` + w(`siellä|sinä`),
			},
			sv: []string{
				atStart(`hej|hallå|god morgon|god eftermiddag|god kväll|hälsningar`),
				w(`hej|hallå`) + `.*` + w(`där|du`),
			},
		}
	default:
		return patternSpec{}
	}
}
